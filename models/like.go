package models

import (
	"gorm.io/gorm"
)

type Like struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_like_pair"`
	PostID uint `gorm:"not null;uniqueIndex:idx_like_pair"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
