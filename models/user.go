package models

import (
	"time"

	"gorm.io/gorm"
)

// Account status values. Withdrawn is terminal; suspended is only
// authoritative together with SuspendUntil (see services.SuspensionService).
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusWithdrawn = "withdrawn"
)

// Visibility modes shared by the member preference and the per-post setting.
const (
	VisibilityPublic  = "public"
	VisibilityFollow  = "follow"
	VisibilityPrivate = "private"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Nickname      string         `gorm:"unique;not null" json:"nickname"`
	Name          string         `gorm:"not null" json:"name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Phone         string         `json:"phone"`
	Password      string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	Photo         string         `json:"photo"`
	Introduce     string         `json:"introduce"`
	Visibility    string         `gorm:"not null;default:'public'" json:"visibility"` // public, follow, private
	Status        string         `gorm:"not null;default:'active'" json:"status"`     // active, suspended, withdrawn
	Role          string         `gorm:"not null;default:'USER'" json:"role"`         // USER, ADMIN
	SuspendUntil  *time.Time     `json:"suspend_until"`
	SuspendReason string         `json:"suspend_reason"`
	EmailVerified bool           `json:"email_verified"`
	LastLoginAt   *time.Time     `json:"last_login_at"`
	Posts         []Post         `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
