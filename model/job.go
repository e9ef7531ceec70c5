package model

import (
	"fmt"
	"strings"
	"time"
)

// ApplyStatus 岗位投递状态
type ApplyStatus int

const (
	// StatusPending 已发现，尚未处理完成
	StatusPending ApplyStatus = iota
	// StatusFiltered 被过滤，不投递
	StatusFiltered
	// StatusApplied 已投递（调试模式下为模拟投递）
	StatusApplied
	// StatusFailed 投递过程出错
	StatusFailed
)

func (s ApplyStatus) String() string {
	switch s {
	case StatusPending:
		return "未投递"
	case StatusFiltered:
		return "已过滤"
	case StatusApplied:
		return "已投递"
	case StatusFailed:
		return "投递失败"
	default:
		return fmt.Sprintf("未知状态(%d)", int(s))
	}
}

// FailReason 投递失败的结构化原因
type FailReason int

const (
	FailNone FailReason = iota
	// FailNavigation 详情页打开或加载失败
	FailNavigation
	// FailNoChatButton 没有沟通入口
	FailNoChatButton
	// FailChatInput 聊天输入框填写失败
	FailChatInput
	// FailSendButton 发送按钮缺失或不可用
	FailSendButton
	// FailUnexpected 其他未预期错误
	FailUnexpected
)

func (r FailReason) String() string {
	switch r {
	case FailNone:
		return ""
	case FailNavigation:
		return "详情页加载失败"
	case FailNoChatButton:
		return "未找到沟通入口"
	case FailChatInput:
		return "聊天输入框填写失败"
	case FailSendButton:
		return "发送按钮不可用"
	case FailUnexpected:
		return "未预期错误"
	default:
		return fmt.Sprintf("未知原因(%d)", int(r))
	}
}

// Job 职位信息结构体，以岗位链接作为唯一标识
type Job struct {
	// 岗位链接
	Href string `json:"href"`
	// 岗位名称
	JobName string `json:"jobName"`
	// 公司名字
	CompanyName string `json:"companyName"`
	// 岗位地区
	JobArea string `json:"jobArea"`
	// 公司标签
	CompanyTag string `json:"companyTag"`
	// 岗位薪水（原始文本）
	Salary string `json:"salary"`
	// HR名称
	Recruiter string `json:"recruiter"`
	// HR活跃状态文本
	HRActiveTime string `json:"hrActiveTime"`
	// 岗位描述
	JobInfo string `json:"jobInfo"`
	// 平台名称
	SiteName string `json:"siteName"`

	Status ApplyStatus `json:"status"`
	Fail   FailReason  `json:"failReason"`
	// 是否已抓取详情页字段
	DetailsFetched bool `json:"detailsFetched"`
}

// MarkFailed 标记投递失败并记录原因
func (j *Job) MarkFailed(reason FailReason) {
	j.Status = StatusFailed
	j.Fail = reason
}

// String 实现 Stringer 接口
func (j *Job) String() string {
	return fmt.Sprintf("【%s, %s, %s, %s, %s, %s】",
		j.CompanyName, j.JobName, j.JobArea, j.Salary, j.CompanyTag, j.Recruiter)
}

// RunSummary 单次运行的汇总结果
type RunSummary struct {
	StartTime time.Time
	EndTime   time.Time
	Applied   []*Job
}

func (s *RunSummary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Message 生成用于通知的汇总文本
func (s *RunSummary) Message(platform string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s投递完成，共投递%d个岗位，用时%s",
		platform, len(s.Applied), s.EndTime.Sub(s.StartTime).Round(time.Second))
	if len(s.Applied) > 0 {
		sb.WriteString("\n新投递岗位:")
		for _, j := range s.Applied {
			fmt.Fprintf(&sb, "\n- %s @ %s", j.JobName, j.CompanyName)
		}
	}
	return sb.String()
}
