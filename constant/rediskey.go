package constant

import (
	"fmt"
	"time"
)

// 常量定义
const (
	BasePrefix = "shorturl:"
	Separator  = ":"
)

// Redis 键模板
const (
	ShortCode    = BasePrefix + "code" + Separator + "%d"                         // shorturl:code:42
	DailyVisits  = BasePrefix + "visits" + Separator + "daily" + Separator + "%s" // shorturl:visits:daily:yyyyMMdd
	TotalVisits  = BasePrefix + "visits" + Separator + "total" + Separator + "%d" // shorturl:visits:total:42
	DailyKeyTTL  = 3 * 24 * 3600                                                   // 每日计数保留 3 天
	CacheHitTTL  = 3600                                                            // 命中缓存 1 小时
	CacheMissTTL = 300                                                             // 空值缓存 5 分钟
)

// ShortURLCodeSequence 短码序列在 sequences 表中的名称
const ShortURLCodeSequence = "short_url_code"

// GetShortCodeKey 生成短码缓存 key
func GetShortCodeKey(code int64) string {
	return fmt.Sprintf(ShortCode, code)
}

// GetDateKey 生成日期键（格式：yyyyMMdd）
func GetDateKey(t time.Time) string {
	return t.Format("20060102")
}

// GetDailyVisitsKey 生成每日访问量哈希键，field 为短码
func GetDailyVisitsKey(date string) string {
	return fmt.Sprintf(DailyVisits, date)
}

// GetTotalVisitsKey 生成总访问量键
func GetTotalVisitsKey(code int64) string {
	return fmt.Sprintf(TotalVisits, code)
}
