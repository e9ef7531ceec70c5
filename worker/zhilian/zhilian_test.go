package zhilian

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"auto_jobs_go/config"
)

func TestGetSearchURL(t *testing.T) {
	z := &ZhiLian{cfg: &config.ZhilianConfig{
		CityCode: "538",
		Salary:   "10001,20000",
	}}

	assert.Equal(t,
		"https://sou.zhaopin.com/?jl=538&kw=golang&sl=10001,20000&p=2",
		z.getSearchURL("golang", 2))
}

func TestGetSearchURLOmitsEmptySalary(t *testing.T) {
	z := &ZhiLian{cfg: &config.ZhilianConfig{CityCode: "538"}}

	assert.Equal(t,
		"https://sou.zhaopin.com/?jl=538&kw=golang&p=1",
		z.getSearchURL("golang", 1))
}
