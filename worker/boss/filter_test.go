package boss

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"auto_jobs_go/config"
	"auto_jobs_go/model"
	"auto_jobs_go/repository"
)

func newTestBoss(t *testing.T) *Boss {
	t.Helper()
	cfg := &config.BossConfig{
		FilterDeadHR:     true,
		DeadStatus:       []string{"2周内活跃", "本月活跃", "2月内活跃", "半年前活跃"},
		AITerms:          []string{"ai", "大模型", "算法"},
		ExcludeRoleTerms: []string{"设计", "产品", "运营"},
		AlgoRoleTerms:    []string{"ai", "算法"},
	}
	return &Boss{
		cfg:       cfg,
		blacklist: repository.NewBlacklistRepository(t.TempDir()),
	}
}

func TestClassifyCardBlacklistedJob(t *testing.T) {
	b := newTestBoss(t)
	b.blacklist.AddJob("https://example.com/job/1")

	v := b.classifyCard(&model.Job{Href: "https://example.com/job/1", JobName: "Golang开发"}, "golang")
	assert.False(t, v.Accept)
	assert.Equal(t, ReasonBlacklistedJob, v.Reason)
}

func TestClassifyCardBlacklistedCompany(t *testing.T) {
	b := newTestBoss(t)
	b.blacklist.AddCompany("外包")

	v := b.classifyCard(&model.Job{
		Href:        "https://example.com/job/2",
		JobName:     "Golang开发",
		CompanyName: "某外包科技公司",
	}, "golang")
	assert.False(t, v.Accept)
	assert.Equal(t, ReasonBlacklistedCompany, v.Reason)
}

func TestClassifyCardAccepted(t *testing.T) {
	b := newTestBoss(t)

	v := b.classifyCard(&model.Job{
		Href:        "https://example.com/job/3",
		JobName:     "Golang后端开发",
		CompanyName: "正经公司",
	}, "golang")
	assert.True(t, v.Accept)
	assert.Equal(t, ReasonNone, v.Reason)
}

func TestIsTargetJob(t *testing.T) {
	b := newTestBoss(t)

	tests := []struct {
		name      string
		jobName   string
		keyword   string
		keyFilter bool
		want      bool
	}{
		{"空标题拒绝", "", "golang", false, false},
		{"严格模式标题含关键词", "Golang开发工程师", "golang", true, true},
		{"严格模式标题不含关键词", "Java开发工程师", "golang", true, false},
		{"宽松模式不同名称也接受", "后端开发", "golang", false, true},
		{"AI关键词撞上产品岗", "产品经理", "ai工程师", false, false},
		{"AI关键词撞上设计岗", "视觉设计师", "大模型", false, false},
		{"算法角色标记放行", "算法产品专家", "ai工程师", false, true},
		{"标题带ai标记放行", "AI产品经理", "ai工程师", false, true},
		{"非AI关键词不触发排除", "运营专员", "运营", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.cfg.KeyFilter = tt.keyFilter
			assert.Equal(t, tt.want, b.isTargetJob(tt.jobName, tt.keyword))
		})
	}
}

func TestClassifyDetailDeadRecruiterBeforeSalary(t *testing.T) {
	b := newTestBoss(t)
	b.cfg.ExpectedSalary = []int{12, 20}

	// 活跃度和薪资都不合格时，活跃度原因优先
	v := b.classifyDetail(&model.Job{
		HRActiveTime: "半年前活跃",
		Salary:       "5-8K",
	})
	assert.False(t, v.Accept)
	assert.Equal(t, ReasonDeadRecruiter, v.Reason)
}

func TestClassifyDetailSalary(t *testing.T) {
	b := newTestBoss(t)
	b.cfg.ExpectedSalary = []int{12, 20}

	v := b.classifyDetail(&model.Job{HRActiveTime: "刚刚活跃", Salary: "10-15K"})
	assert.True(t, v.Accept)

	v = b.classifyDetail(&model.Job{HRActiveTime: "刚刚活跃", Salary: "5-9K"})
	assert.False(t, v.Accept)
	assert.Equal(t, ReasonSalaryMismatch, v.Reason)
}

func TestClassifyDetailEmptySalarySkipsCheck(t *testing.T) {
	b := newTestBoss(t)
	b.cfg.ExpectedSalary = []int{12, 20}

	v := b.classifyDetail(&model.Job{HRActiveTime: "刚刚活跃", Salary: ""})
	assert.True(t, v.Accept)
}

func TestClassifyDetailBlacklistedRecruiter(t *testing.T) {
	b := newTestBoss(t)
	b.blacklist.AddRecruiter("王五")

	v := b.classifyDetail(&model.Job{
		HRActiveTime: "刚刚活跃",
		Salary:       "15-20K",
		Recruiter:    "王五",
	})
	assert.False(t, v.Accept)
	assert.Equal(t, ReasonBlacklistedRecruiter, v.Reason)
}

func TestIsDeadRecruiter(t *testing.T) {
	b := newTestBoss(t)

	assert.True(t, b.isDeadRecruiter("半年前活跃"))
	assert.True(t, b.isDeadRecruiter("2月内活跃"))
	assert.False(t, b.isDeadRecruiter("刚刚活跃"))
	assert.False(t, b.isDeadRecruiter(""))

	b.cfg.FilterDeadHR = false
	assert.False(t, b.isDeadRecruiter("半年前活跃"))
}

func TestRejectReasonString(t *testing.T) {
	assert.Equal(t, "薪资不符合预期", ReasonSalaryMismatch.String())
	assert.Equal(t, "", ReasonNone.String())
}
