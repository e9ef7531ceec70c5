package boss

import (
	"fmt"
	"strings"

	"auto_jobs_go/model"
	"auto_jobs_go/utils"
)

// RejectReason 过滤原因枚举
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonBlacklistedJob
	ReasonBlacklistedCompany
	ReasonBlacklistedRecruiter
	ReasonTitleMismatch
	ReasonDeadRecruiter
	ReasonSalaryMismatch
)

func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonBlacklistedJob:
		return "职位黑名单命中"
	case ReasonBlacklistedCompany:
		return "公司黑名单命中"
	case ReasonBlacklistedRecruiter:
		return "招聘者黑名单命中"
	case ReasonTitleMismatch:
		return "岗位名称不匹配"
	case ReasonDeadRecruiter:
		return "招聘者长期不活跃"
	case ReasonSalaryMismatch:
		return "薪资不符合预期"
	default:
		return fmt.Sprintf("未知原因(%d)", int(r))
	}
}

// Verdict 过滤结论
type Verdict struct {
	Accept bool
	Reason RejectReason
}

var accepted = Verdict{Accept: true}

func rejected(r RejectReason) Verdict {
	return Verdict{Reason: r}
}

// classifyCard 卡片阶段过滤：黑名单和岗位名称，不需要打开详情页。
// 按顺序短路，第一个不通过即返回。
func (b *Boss) classifyCard(job *model.Job, keyword string) Verdict {
	if b.blacklist.HasJob(job.Href) {
		return rejected(ReasonBlacklistedJob)
	}
	if b.blacklist.MatchCompany(job.CompanyName) {
		return rejected(ReasonBlacklistedCompany)
	}
	if !b.isTargetJob(job.JobName, keyword) {
		return rejected(ReasonTitleMismatch)
	}
	return accepted
}

// classifyDetail 详情阶段过滤：招聘者活跃度、薪资、招聘者黑名单。
// 顺序即优先级，前面的不通过就不再评估后面的。
func (b *Boss) classifyDetail(job *model.Job) Verdict {
	if b.isDeadRecruiter(job.HRActiveTime) {
		return rejected(ReasonDeadRecruiter)
	}
	if utils.SalaryNotExpected(job.Salary, b.cfg.ExpectedSalary) {
		return rejected(ReasonSalaryMismatch)
	}
	if job.Recruiter != "" && b.blacklist.HasRecruiter(job.Recruiter) {
		return rejected(ReasonBlacklistedRecruiter)
	}
	return accepted
}

// isTargetJob 岗位名称启发式：
// 严格关键词模式下名称必须包含搜索词；
// 搜索词是AI/算法方向、而岗位名是设计/产品/运营类且没有算法角色标记时排除，
// 防止“AI产品经理”这类撞词岗位混进工程类搜索结果。
// 词表来自配置，按原样匹配。
func (b *Boss) isTargetJob(jobName, keyword string) bool {
	if jobName == "" {
		return false
	}
	jn := strings.ToLower(jobName)
	kw := strings.ToLower(keyword)

	if b.cfg.KeyFilter && !strings.Contains(jn, kw) {
		return false
	}

	aiKeyword := utils.ContainsAnyTerm(kw, b.cfg.AITerms)
	excludedRole := utils.ContainsAnyTerm(jn, b.cfg.ExcludeRoleTerms)
	algoRole := utils.ContainsAnyTerm(jn, b.cfg.AlgoRoleTerms)

	return !(aiKeyword && excludedRole && !algoRole)
}

// isDeadRecruiter 活跃度文本命中任一“死HR”标签
func (b *Boss) isDeadRecruiter(activeLabel string) bool {
	if !b.cfg.FilterDeadHR || activeLabel == "" {
		return false
	}
	return utils.ContainsAnyTerm(activeLabel, b.cfg.DeadStatus)
}
