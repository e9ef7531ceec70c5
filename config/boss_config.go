package config

// BossConfig Boss直聘配置数据结构
type BossConfig struct {
	SayHi          string            `mapstructure:"say_hi" yaml:"say_hi"`
	Debugger       bool              `mapstructure:"debugger" yaml:"debugger"`
	Keywords       []string          `mapstructure:"keywords" yaml:"keywords"`
	CityCode       []string          `mapstructure:"city_code" yaml:"city_code"`
	CustomCityCode map[string]string `mapstructure:"custom_city_code" yaml:"custom_city_code"`
	JobType        string            `mapstructure:"job_type" yaml:"job_type"`
	Salary         string            `mapstructure:"salary" yaml:"salary"`
	Experience     []string          `mapstructure:"experience" yaml:"experience"`
	Degree         []string          `mapstructure:"degree" yaml:"degree"`
	Scale          []string          `mapstructure:"scale" yaml:"scale"`
	Stage          []string          `mapstructure:"stage" yaml:"stage"`
	ExpectedSalary []int             `mapstructure:"expected_salary" yaml:"expected_salary"`
	// 页面操作等待时间（秒），同时作为岗位间随机停顿的基数
	WaitTime      int  `mapstructure:"wait_time" yaml:"wait_time"`
	EnableAI      bool `mapstructure:"enable_ai" yaml:"enable_ai"`
	FilterDeadHR  bool `mapstructure:"filter_dead_hr" yaml:"filter_dead_hr"`
	SendImgResume bool `mapstructure:"send_img_resume" yaml:"send_img_resume"`
	// 严格关键词模式：岗位名必须包含搜索关键词
	KeyFilter      bool     `mapstructure:"key_filter" yaml:"key_filter"`
	ResumeFilename string   `mapstructure:"resume_filename" yaml:"resume_filename"`
	DeadStatus     []string `mapstructure:"dead_status" yaml:"dead_status"`
	// 每隔N分钟重跑一次，0表示只跑一次
	NextIntervalMinutes int `mapstructure:"next_interval_minutes" yaml:"next_interval_minutes"`
	// 每分钟最多发起的投递次数上限
	MaxApplyPerMinute int `mapstructure:"max_apply_per_minute" yaml:"max_apply_per_minute"`

	// 岗位名称启发式过滤的词表，按原样匹配，不做语义推断
	AITerms          []string `mapstructure:"ai_terms" yaml:"ai_terms"`
	ExcludeRoleTerms []string `mapstructure:"exclude_role_terms" yaml:"exclude_role_terms"`
	AlgoRoleTerms    []string `mapstructure:"algo_role_terms" yaml:"algo_role_terms"`
}

func (c *BossConfig) applyDefaults() {
	if c.SayHi == "" {
		c.SayHi = "您好,期待可以与您进一步沟通,谢谢！"
	}
	if c.JobType == "" {
		c.JobType = UnlimitedOption
	}
	if c.Salary == "" {
		c.Salary = UnlimitedOption
	}
	if c.WaitTime <= 0 {
		c.WaitTime = 10
	}
	if c.ResumeFilename == "" {
		c.ResumeFilename = "resume.jpg"
	}
	if c.MaxApplyPerMinute <= 0 {
		c.MaxApplyPerMinute = 10
	}
	if len(c.DeadStatus) == 0 {
		c.DeadStatus = []string{"2周内活跃", "本月活跃", "2月内活跃", "半年前活跃"}
	}
	if len(c.AITerms) == 0 {
		c.AITerms = []string{"ai", "大模型", "算法"}
	}
	if len(c.ExcludeRoleTerms) == 0 {
		c.ExcludeRoleTerms = []string{"设计", "产品", "运营"}
	}
	if len(c.AlgoRoleTerms) == 0 {
		c.AlgoRoleTerms = []string{"ai", "算法"}
	}
}
