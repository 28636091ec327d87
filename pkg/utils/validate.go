package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var targetURLPattern = regexp.MustCompile(`^https?://`)

// ValidateTargetURL 校验待缩短的地址，仅接受 http/https 绝对地址
func ValidateTargetURL(targetURL string) error {
	if targetURL == "" {
		return fmt.Errorf("error.target_url_required")
	}
	if !targetURLPattern.MatchString(targetURL) {
		return fmt.Errorf("error.target_url_invalid")
	}
	return nil
}

// ParseShortCode 把路径中的短码按数值转换为正整数："1.0"、"1e0" 与 "1" 等价，
// 带小数部分、非有限值或超出 int64 的输入都视为无效
func ParseShortCode(raw string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse short code %q: %w", raw, err)
	}
	if f != math.Trunc(f) || f < 1 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("short code %q out of range", raw)
	}
	return int64(f), nil
}
