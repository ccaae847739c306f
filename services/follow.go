package services

import (
	"errors"

	"github.com/studylink/api-go/models"
	"gorm.io/gorm"
)

// FollowService maintains the directed follow graph. At most one edge per
// ordered pair; only accepted edges grant visibility.
type FollowService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewFollowService(db *gorm.DB, notifications *NotificationService) *FollowService {
	return &FollowService{db: db, notifications: notifications}
}

// Follow creates an edge from follower to the member named by nickname.
// Members with a public default visibility accept immediately; the rest get
// a pending request they can accept or reject.
func (s *FollowService) Follow(followerID uint, nickname string) (*models.FollowEdge, error) {
	var follower models.User
	if err := s.db.First(&follower, followerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var target models.User
	err := s.db.Where("nickname = ? AND status <> ?", nickname, models.StatusWithdrawn).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if follower.ID == target.ID {
		return nil, ErrSelfFollow
	}

	var existing int64
	if err := s.db.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND followed_id = ?", follower.ID, target.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyFollowing
	}

	status := models.FollowAccepted
	if target.Visibility != models.VisibilityPublic {
		status = models.FollowPending
	}

	edge := models.FollowEdge{
		FollowerID: follower.ID,
		FollowedID: target.ID,
		Status:     status,
	}
	if err := s.db.Create(&edge).Error; err != nil {
		return nil, err
	}

	if err := s.notifications.NotifyFollow(&follower, &target); err != nil {
		return nil, err
	}
	return &edge, nil
}

// Accept approves a pending request from followerID to userID.
func (s *FollowService) Accept(userID, followerID uint) error {
	return s.setStatus(userID, followerID, models.FollowAccepted)
}

// Reject declines a pending request from followerID to userID.
func (s *FollowService) Reject(userID, followerID uint) error {
	return s.setStatus(userID, followerID, models.FollowRejected)
}

func (s *FollowService) setStatus(userID, followerID uint, status string) error {
	res := s.db.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND followed_id = ? AND status = ?",
			followerID, userID, models.FollowPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FollowService) Unfollow(followerID uint, nickname string) error {
	var target models.User
	if err := s.db.Where("nickname = ?", nickname).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Hard delete: a soft-deleted row would keep occupying the unique pair
	// index and block a later re-follow.
	res := s.db.Unscoped().Where("follower_id = ? AND followed_id = ?", followerID, target.ID).
		Delete(&models.FollowEdge{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Edge returns the edge follower -> followed, or nil when none exists.
func (s *FollowService) Edge(followerID, followedID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	err := s.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// Followers lists members with an accepted edge into userID.
func (s *FollowService) Followers(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN follow_edges ON follow_edges.follower_id = users.id").
		Where("follow_edges.followed_id = ? AND follow_edges.status = ? AND follow_edges.deleted_at IS NULL",
			userID, models.FollowAccepted).
		Find(&users).Error
	return users, err
}

// Following lists members userID has an accepted edge toward.
func (s *FollowService) Following(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN follow_edges ON follow_edges.followed_id = users.id").
		Where("follow_edges.follower_id = ? AND follow_edges.status = ? AND follow_edges.deleted_at IS NULL",
			userID, models.FollowAccepted).
		Find(&users).Error
	return users, err
}

// PendingRequests lists members waiting for userID's approval.
func (s *FollowService) PendingRequests(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN follow_edges ON follow_edges.follower_id = users.id").
		Where("follow_edges.followed_id = ? AND follow_edges.status = ? AND follow_edges.deleted_at IS NULL",
			userID, models.FollowPending).
		Find(&users).Error
	return users, err
}

// RemoveAllFor drops every edge touching userID, in either direction.
// Called when a member withdraws.
func (s *FollowService) RemoveAllFor(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("follower_id = ? OR followed_id = ?", userID, userID).
		Delete(&models.FollowEdge{}).Error
}
