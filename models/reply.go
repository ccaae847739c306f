package models

import (
	"gorm.io/gorm"
)

// Reply status. A deleted reply with children stays as a tombstone so the
// thread keeps its shape; leaf replies are removed outright.
const (
	ReplyActive  = "active"
	ReplyDeleted = "deleted"
)

type Reply struct {
	gorm.Model
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	ParentID *uint  `gorm:"index" json:"parent_id"` // set for nested replies
	Content  string `gorm:"not null;type:varchar(1000)" json:"content"`
	Status   string `gorm:"not null;default:'active'" json:"status"` // active, deleted

	User User `gorm:"foreignKey:UserID" json:"user"`
}
