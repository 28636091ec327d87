package model

import "time"

type ExerciseUser struct {
	ID        string     `gorm:"primaryKey;size:36" json:"_id"`
	Username  string     `gorm:"size:255;not null" json:"username"`
	Exercises []Exercise `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"-"`
}

type Exercise struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"size:36;index;not null"`
	Description string    `gorm:"type:text;not null"`
	Duration    int       `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"`
}
