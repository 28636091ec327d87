package model

import "time"

type Book struct {
	ID        string        `gorm:"primaryKey;size:36"`
	Title     string        `gorm:"size:512;not null"`
	Comments  []BookComment `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type BookComment struct {
	ID     uint   `gorm:"primaryKey"`
	BookID string `gorm:"size:36;index;not null"`
	Body   string `gorm:"type:text;not null"`
}
