package model

import "time"

type Issue struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id"`
	Project    string    `gorm:"size:255;index;not null" json:"project"`
	IssueTitle string    `gorm:"size:512;not null" json:"issue_title"`
	IssueText  string    `gorm:"type:text;not null" json:"issue_text"`
	CreatedBy  string    `gorm:"size:255;not null" json:"created_by"`
	AssignedTo string    `gorm:"size:255" json:"assigned_to"`
	StatusText string    `gorm:"size:255" json:"status_text"`
	Open       bool      `gorm:"not null;default:true" json:"open"`
	CreatedOn  time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedOn  time.Time `gorm:"autoUpdateTime" json:"updated_on"`
}

// IssueColumns 允许通过查询串过滤、通过 PUT 更新的字段（JSON 名 -> 列名）
var IssueColumns = map[string]string{
	"_id":         "id",
	"issue_title": "issue_title",
	"issue_text":  "issue_text",
	"created_by":  "created_by",
	"assigned_to": "assigned_to",
	"status_text": "status_text",
	"open":        "open",
}
