package services

import (
	"fmt"

	"github.com/studylink/api-go/models"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) NotifyFollow(follower, target *models.User) error {
	n := models.Notification{
		UserID:  target.ID,
		ActorID: follower.ID,
		Type:    models.NotificationFollow,
		Message: fmt.Sprintf("%s started following you", follower.Nickname),
	}
	return s.db.Create(&n).Error
}

func (s *NotificationService) NotifyReply(actor *models.User, targetUserID uint) error {
	n := models.Notification{
		UserID:  targetUserID,
		ActorID: actor.ID,
		Type:    models.NotificationReply,
		Message: fmt.Sprintf("%s replied to your post", actor.Nickname),
	}
	return s.db.Create(&n).Error
}

func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
