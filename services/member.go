package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/storage"
	"gorm.io/gorm"
)

// MemberService owns the account lifecycle pieces that cut across other
// entities, chiefly withdrawal.
type MemberService struct {
	db      *gorm.DB
	follows *FollowService
	replies *ReplyService
	images  storage.ImageStore
}

func NewMemberService(db *gorm.DB, follows *FollowService, replies *ReplyService, images storage.ImageStore) *MemberService {
	return &MemberService{db: db, follows: follows, replies: replies, images: images}
}

// Withdraw terminates an account. Identity fields are anonymized, the
// status becomes withdrawn (irreversible), the member's posts, their stored
// images and their replies are deleted, and follow edges in both directions
// are dropped. Messages keep their rows so the other side's mailbox survives.
func (s *MemberService) Withdraw(userID uint) error {
	var removedImages []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.Status == models.StatusWithdrawn {
			return ErrWithdrawn
		}

		var posts []models.Post
		if err := tx.Where("user_id = ?", userID).Find(&posts).Error; err != nil {
			return err
		}
		for i := range posts {
			removedImages = append(removedImages, posts[i].Images...)
			if err := deletePostCascade(tx, &posts[i]); err != nil {
				return err
			}
		}

		if err := s.follows.RemoveAllFor(tx, userID); err != nil {
			return err
		}

		if err := s.replies.RemoveAllFor(tx, userID); err != nil {
			return err
		}

		user.Status = models.StatusWithdrawn
		user.Nickname = fmt.Sprintf("withdrawn-%d", user.ID)
		user.Name = "withdrawn"
		user.Email = fmt.Sprintf("withdrawn-%d@invalid", user.ID)
		user.Phone = ""
		user.Photo = ""
		user.Introduce = ""
		return tx.Save(&user).Error
	})
	if err != nil {
		return err
	}

	if len(removedImages) > 0 {
		if err := s.images.Remove(context.Background(), removedImages); err != nil {
			log.Printf("failed to remove images for withdrawn member %d: %v", userID, err)
		}
	}
	return nil
}

func (s *MemberService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MemberService) GetByNickname(nickname string) (*models.User, error) {
	var user models.User
	err := s.db.Where("nickname = ?", nickname).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
