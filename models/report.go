package models

import (
	"time"
)

// Report status is monotonic: pending -> resolved, never back.
const (
	ReportPending  = "pending"
	ReportResolved = "resolved"
)

type Report struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// PostID is a plain id, not a foreign key: reports outlive the post
	// they reference (audit trail).
	PostID     uint   `gorm:"not null" json:"post_id"`
	ReporterID uint   `gorm:"not null" json:"reporter_id"`
	Reason     string `gorm:"not null" json:"reason"`
	Status     string `gorm:"not null;default:'pending'" json:"status"` // pending, resolved

	Reporter User `gorm:"foreignKey:ReporterID" json:"reporter"`
}
