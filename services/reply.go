package services

import (
	"errors"

	"github.com/studylink/api-go/models"
	"gorm.io/gorm"
)

// ReplyService manages threaded replies on posts. Replies notify the post's
// author, nested replies additionally notify the parent reply's author.
type ReplyService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewReplyService(db *gorm.DB, notifications *NotificationService) *ReplyService {
	return &ReplyService{db: db, notifications: notifications}
}

// Create adds a reply to a post, nested under parentID when set. The parent
// must belong to the same post.
func (s *ReplyService) Create(postID, authorID uint, parentID *uint, content string) (*models.Reply, error) {
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var parent *models.Reply
	if parentID != nil {
		parent = &models.Reply{}
		err := s.db.Where("id = ? AND post_id = ?", *parentID, postID).First(parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	reply := models.Reply{
		PostID:   postID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
		Status:   models.ReplyActive,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}

	// No notification for replying to yourself.
	if post.UserID != authorID {
		if err := s.notifications.NotifyReply(&author, post.UserID); err != nil {
			return nil, err
		}
	}
	if parent != nil && parent.UserID != authorID && parent.UserID != post.UserID {
		if err := s.notifications.NotifyReply(&author, parent.UserID); err != nil {
			return nil, err
		}
	}
	return &reply, nil
}

// ListForPost returns a post's active replies, oldest first.
func (s *ReplyService) ListForPost(postID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := s.db.Preload("User").
		Where("post_id = ? AND status = ?", postID, models.ReplyActive).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// CountForPost counts a post's active replies.
func (s *ReplyService) CountForPost(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Reply{}).
		Where("post_id = ? AND status = ?", postID, models.ReplyActive).
		Count(&count).Error
	return count, err
}

// Update changes a reply's content. Author only.
func (s *ReplyService) Update(replyID, requesterID uint, content string) (*models.Reply, error) {
	var reply models.Reply
	if err := s.db.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if reply.UserID != requesterID {
		return nil, ErrNotOwner
	}

	reply.Content = content
	if err := s.db.Save(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// Delete removes a reply. The author or a moderator may delete; a reply with
// children is only tombstoned so its thread stays intact.
func (s *ReplyService) Delete(replyID, requesterID uint, moderator bool) error {
	var reply models.Reply
	if err := s.db.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if reply.UserID != requesterID && !moderator {
		return ErrNotOwner
	}

	var children int64
	if err := s.db.Model(&models.Reply{}).
		Where("parent_id = ?", reply.ID).
		Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return s.db.Model(&reply).Update("status", models.ReplyDeleted).Error
	}
	return s.db.Unscoped().Delete(&reply).Error
}

// RemoveAllFor drops every reply authored by userID. Called on withdrawal.
func (s *ReplyService) RemoveAllFor(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Reply{}).Error
}
