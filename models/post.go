package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	gorm.Model
	UserID     uint           `json:"userId" gorm:"not null;index"`
	User       User           `json:"user" gorm:"foreignKey:UserID"`
	Type       string         `json:"type" gorm:"type:varchar(10);default:'daily'"` // "daily" or "study"
	Category   string         `json:"category" gorm:"type:varchar(20)"`
	Title      string         `json:"title" gorm:"type:varchar(50)"`
	Content    string         `json:"content" gorm:"not null;type:text"`
	Visibility string         `json:"visibility" gorm:"not null;default:'public';type:varchar(10)"` // public, follow, private
	Hidden     bool           `json:"hidden" gorm:"not null;default:false"`                         // moderation override, independent of Visibility
	Images     pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags       pq.StringArray `json:"tags" gorm:"type:text[]"`
	LikeCount  int64          `json:"likeCount" gorm:"not null;default:0"`
	ScrapCount int64          `json:"scrapCount" gorm:"not null;default:0"`
	ReadHit    int64          `json:"readHit" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
