package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobMarkFailed(t *testing.T) {
	job := &Job{JobName: "Golang开发"}
	assert.Equal(t, StatusPending, job.Status)

	job.MarkFailed(FailNoChatButton)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, FailNoChatButton, job.Fail)
	assert.Equal(t, "未找到沟通入口", job.Fail.String())
}

func TestJobString(t *testing.T) {
	job := &Job{
		CompanyName: "某公司",
		JobName:     "Golang开发",
		JobArea:     "上海·浦东",
		Salary:      "20-30K",
		CompanyTag:  "互联网·D轮",
		Recruiter:   "张三",
	}
	assert.Equal(t, "【某公司, Golang开发, 上海·浦东, 20-30K, 互联网·D轮, 张三】", job.String())
}

func TestRunSummaryMessage(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	summary := &RunSummary{
		StartTime: start,
		EndTime:   start.Add(90 * time.Second),
		Applied: []*Job{
			{JobName: "Golang开发", CompanyName: "甲公司"},
			{JobName: "后端工程师", CompanyName: "乙公司"},
		},
	}

	msg := summary.Message("Boss直聘")
	assert.Contains(t, msg, "Boss直聘投递完成")
	assert.Contains(t, msg, "共投递2个岗位")
	assert.Contains(t, msg, "1m30s")
	assert.Contains(t, msg, "- Golang开发 @ 甲公司")
	assert.Contains(t, msg, "- 后端工程师 @ 乙公司")
}

func TestRunSummaryMessageEmpty(t *testing.T) {
	now := time.Now()
	summary := &RunSummary{StartTime: now, EndTime: now}

	msg := summary.Message("Boss直聘")
	assert.Contains(t, msg, "共投递0个岗位")
	assert.NotContains(t, msg, "新投递岗位")
}
