package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryRange(t *testing.T) {
	rng := ParseSalary("9-12K")
	require.False(t, rng.Absent())
	assert.Equal(t, 9.0, *rng.Min)
	assert.Equal(t, 12.0, *rng.Max)
	assert.Equal(t, 12, rng.BonusMonths)
	assert.False(t, rng.IsDailyRate)
}

func TestParseSalaryBonusMonths(t *testing.T) {
	rng := ParseSalary("9-12K·13薪")
	require.False(t, rng.Absent())
	assert.Equal(t, 9.0, *rng.Min)
	assert.Equal(t, 12.0, *rng.Max)
	assert.Equal(t, 13, rng.BonusMonths)
}

func TestParseSalaryDailyRate(t *testing.T) {
	rng := ParseSalary("300元/天")
	require.False(t, rng.Absent())
	assert.True(t, rng.IsDailyRate)
	// 300 × 21.75 / 1000 = 6.525千元/月
	assert.InDelta(t, 6.525, *rng.Min, 0.001)
	assert.InDelta(t, 6.525, *rng.Max, 0.001)
}

func TestParseSalarySingleValue(t *testing.T) {
	rng := ParseSalary("15K以上")
	require.False(t, rng.Absent())
	assert.Equal(t, 15.0, *rng.Min)
	assert.Equal(t, 15.0, *rng.Max)
}

func TestParseSalaryGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "面议", "薪资面谈", "1-2-3K"} {
		rng := ParseSalary(raw)
		assert.True(t, rng.Absent(), "raw=%q", raw)
		assert.Equal(t, 12, rng.BonusMonths, "raw=%q", raw)
	}
}

func TestParseSalaryMinNotAboveMax(t *testing.T) {
	for _, raw := range []string{"9-12K", "20-30K·14薪", "100-200元/天", "8K"} {
		rng := ParseSalary(raw)
		require.False(t, rng.Absent(), "raw=%q", raw)
		assert.LessOrEqual(t, *rng.Min, *rng.Max, "raw=%q", raw)
	}
}

func TestSalaryNotExpected(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []int
		want     bool
	}{
		{"区间重叠", "10-15K", []int{12, 20}, false},
		{"区间低于期望", "5-9K", []int{12, 20}, true},
		{"区间高于期望", "30-40K", []int{12, 20}, true},
		{"边界相接", "10-12K", []int{12, 20}, false},
		{"单值期望", "10-15K", []int{12}, false},
		{"无薪资文本不过滤", "", []int{12, 20}, false},
		{"未配置期望不过滤", "10-15K", nil, false},
		{"解析失败按不符合", "面议", []int{12, 20}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SalaryNotExpected(tt.raw, tt.expected))
		})
	}
}
