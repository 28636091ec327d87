package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// UTCLayout 与浏览器 Date.toUTCString() 输出一致
	UTCLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
	// DateStringLayout 与 Date.toDateString() 输出一致
	DateStringLayout = "Mon Jan 02 2006"
	DayLayout        = "2006-01-02"
)

// ParseDate 解析日期字符串：纯数字视为 Unix 毫秒，其余按常见日期格式解析，无时区时按 UTC
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && isDigits(s) {
		return time.UnixMilli(ms).UTC(), nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func FormatUTC(t time.Time) string {
	return t.UTC().Format(UTCLayout)
}

func FormatDateString(t time.Time) string {
	return t.UTC().Format(DateStringLayout)
}

// StartOfDay 截断到 UTC 零点
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isDigits(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
