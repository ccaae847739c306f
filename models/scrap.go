package models

import (
	"gorm.io/gorm"
)

type Scrap struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_scrap_pair"`
	PostID uint `gorm:"not null;uniqueIndex:idx_scrap_pair"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
