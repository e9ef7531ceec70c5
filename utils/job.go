package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// UNLIMITED_CODE 不限选项的代码
const UNLIMITED_CODE = "0"

// AppendParam 追加参数
func AppendParam(name, value string) string {
	if value == "" || value == UNLIMITED_CODE {
		return ""
	}
	return "&" + name + "=" + value
}

// FormatDuration 计算并格式化耗时
// 返回格式化后的时间字符串，格式为 "H时m分s秒"
func FormatDuration(startTime, endTime time.Time) string {
	duration := endTime.Sub(startTime)

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	return fmt.Sprintf("%d时%d分%d秒", hours, minutes, seconds)
}

// GetRandomNumberInRange 获取指定范围内的随机数
func GetRandomNumberInRange(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return rand.Intn(max-min+1) + min
}

// SleepRandom 在指定范围内随机睡眠（秒）
func SleepRandom(minSeconds, maxSeconds int) {
	duration := GetRandomNumberInRange(minSeconds, maxSeconds)
	time.Sleep(time.Duration(duration) * time.Second)
}

// ContainsString 检查字符串切片是否包含指定字符串
func ContainsString(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}

// ContainsAnyTerm 检查文本是否包含词表中的任一词
func ContainsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// IsEmpty 检查字符串是否为空（去除空格后）
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DefaultIfEmpty 如果字符串为空，返回默认值
func DefaultIfEmpty(s, defaultValue string) string {
	if IsEmpty(s) {
		return defaultValue
	}
	return s
}
