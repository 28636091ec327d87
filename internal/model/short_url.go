package model

import (
	"crypto/sha256"
	"encoding/hex"

	"gorm.io/gorm"
)

// ShortURL 原始地址与数字短码的映射。
//
// original_url 的唯一性由 url_hash 上的唯一索引保证（MySQL 无法对超长 varchar 建唯一索引）。
type ShortURL struct {
	BaseModel
	OriginalURL string `gorm:"type:text;not null" json:"original_url"`
	URLHash     string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Code        int64  `gorm:"uniqueIndex;not null" json:"short_url"`
	Visits      int64  `gorm:"default:0" json:"visits"`
}

// HashURL 返回原始地址的 sha256 十六进制摘要
func HashURL(originalURL string) string {
	sum := sha256.Sum256([]byte(originalURL))
	return hex.EncodeToString(sum[:])
}

func (s *ShortURL) BeforeCreate(tx *gorm.DB) error {
	s.URLHash = HashURL(s.OriginalURL)
	return nil
}

// Sequence 持久化的单调递增计数器
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

type DailyStat struct {
	BaseModel
	ShortURLID uint   `gorm:"uniqueIndex:idx_daily_stat_url_date;not null" json:"-"`
	Date       string `gorm:"size:10;uniqueIndex:idx_daily_stat_url_date;not null" json:"date"` // YYYY-MM-DD
	Visits     int64  `gorm:"default:0" json:"visits"`
}
