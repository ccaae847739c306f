package models

import (
	"gorm.io/gorm"
)

const (
	NotificationFollow = "follow"
	NotificationLike   = "like"
	NotificationReply  = "reply"
)

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"user_id"` // recipient
	ActorID uint   `gorm:"not null" json:"actor_id"`
	Type    string `gorm:"not null;type:varchar(20)" json:"type"`
	Message string `gorm:"not null" json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	Actor User `gorm:"foreignKey:ActorID" json:"actor"`
}
