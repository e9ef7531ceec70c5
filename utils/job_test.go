package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendParam(t *testing.T) {
	assert.Equal(t, "&city=c101020100", AppendParam("city", "c101020100"))
	assert.Equal(t, "", AppendParam("city", ""))
	assert.Equal(t, "", AppendParam("city", UNLIMITED_CODE))
}

func TestFormatDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	end := start.Add(1*time.Hour + 23*time.Minute + 45*time.Second)
	assert.Equal(t, "1时23分45秒", FormatDuration(start, end))
}

func TestGetRandomNumberInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := GetRandomNumberInRange(3, 7)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)
	}
	// 上下界颠倒也能工作
	v := GetRandomNumberInRange(7, 3)
	assert.GreaterOrEqual(t, v, 3)
	assert.LessOrEqual(t, v, 7)
}

func TestContainsAnyTerm(t *testing.T) {
	terms := []string{"ai", "大模型", "算法"}
	assert.True(t, ContainsAnyTerm("ai工程师", terms))
	assert.True(t, ContainsAnyTerm("大模型训练", terms))
	assert.False(t, ContainsAnyTerm("前端开发", terms))
	assert.False(t, ContainsAnyTerm("任意文本", []string{""}))
}

func TestDefaultIfEmpty(t *testing.T) {
	assert.Equal(t, "默认", DefaultIfEmpty("  ", "默认"))
	assert.Equal(t, "值", DefaultIfEmpty("值", "默认"))
}
