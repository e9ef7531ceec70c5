package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// SalaryRange 归一化后的月薪区间，单位为“千元/月”
type SalaryRange struct {
	Min *float64
	Max *float64
	// 一年发几个月薪水，默认12
	BonusMonths int
	// 原文是否为日薪
	IsDailyRate bool
}

// Absent 无法解析出数值区间
func (r SalaryRange) Absent() bool {
	return r.Min == nil || r.Max == nil
}

// 工作日折算系数：日薪 × 21.75 个工作日，再换算到千元
const dailyRateFactor = 21.75 / 1000

var bonusMonthsPattern = regexp.MustCompile(`·?(\d+)薪`)

// ParseSalary 解析薪资文本，任何垃圾输入都返回有效的SalaryRange，
// 解析不出区间时Min/Max为空，不报错
func ParseSalary(raw string) SalaryRange {
	rng := SalaryRange{BonusMonths: 12}
	if strings.TrimSpace(raw) == "" {
		return rng
	}

	s := strings.ToLower(raw)
	rng.IsDailyRate = strings.Contains(s, "/day") || strings.Contains(s, "元/天")

	if m := bonusMonthsPattern.FindStringSubmatch(s); m != nil {
		if months, err := strconv.Atoi(m[1]); err == nil {
			rng.BonusMonths = months
		}
		s = strings.TrimSpace(bonusMonthsPattern.ReplaceAllString(s, ""))
	}

	for _, marker := range []string{"k", "元/天", "/day", "以上", "以下"} {
		s = strings.ReplaceAll(s, marker, "")
	}

	parts := strings.Split(s, "-")
	var minV, maxV float64
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return rng
		}
		minV, maxV = v, v
	case 2:
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return rng
		}
		minV, maxV = lo, hi
	default:
		return rng
	}

	if rng.IsDailyRate {
		minV *= dailyRateFactor
		maxV *= dailyRateFactor
	}
	rng.Min, rng.Max = &minV, &maxV
	return rng
}

// SalaryNotExpected 岗位薪资与期望区间不重叠时返回true。
// 岗位没有薪资文本或未配置期望区间时不过滤；
// 有文本但解析失败按不符合处理。
func SalaryNotExpected(rawText string, expected []int) bool {
	if rawText == "" || len(expected) == 0 {
		return false
	}

	expMin := float64(expected[0])
	expMax := expMin
	if len(expected) > 1 {
		expMax = float64(expected[1])
	}

	rng := ParseSalary(rawText)
	if rng.Absent() {
		return true
	}
	return !(*rng.Max >= expMin && *rng.Min <= expMax)
}
