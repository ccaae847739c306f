package models

import (
	"gorm.io/gorm"
)

// Follow edge status. Only accepted edges grant follower visibility.
const (
	FollowPending  = "pending"
	FollowAccepted = "accepted"
	FollowRejected = "rejected"
)

type FollowEdge struct {
	gorm.Model
	FollowerID uint   `gorm:"not null;uniqueIndex:idx_follow_pair"`
	FollowedID uint   `gorm:"not null;uniqueIndex:idx_follow_pair"`
	Status     string `gorm:"not null;default:'pending'"` // pending, accepted, rejected

	Follower User `gorm:"foreignKey:FollowerID"`
	Followed User `gorm:"foreignKey:FollowedID"`
}
