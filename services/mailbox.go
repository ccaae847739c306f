package services

import (
	"errors"

	"github.com/studylink/api-go/models"
	"gorm.io/gorm"
)

// MailboxSide selects which visibility perspective a bulk clear targets.
type MailboxSide string

const (
	SideReceived MailboxSide = "received"
	SideSent     MailboxSide = "sent"
)

// MailboxService manages the two-sided soft-delete state of private
// messages. A row is physically deleted only once neither side can see it.
type MailboxService struct {
	db *gorm.DB
}

func NewMailboxService(db *gorm.DB) *MailboxService {
	return &MailboxService{db: db}
}

func (s *MailboxService) Send(senderID, receiverID uint, content string) (*models.Message, error) {
	var receiver models.User
	if err := s.db.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if receiver.Status == models.StatusWithdrawn {
		return nil, ErrWithdrawn
	}

	msg := models.Message{
		SenderID:          senderID,
		ReceiverID:        receiverID,
		Content:           content,
		VisibleToSender:   true,
		VisibleToReceiver: true,
		ReadByReceiver:    false,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// Received lists messages still visible from the receiver's side.
func (s *MailboxService) Received(userID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.Preload("Sender").
		Where("receiver_id = ? AND visible_to_receiver = ?", userID, true).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

// Sent lists messages still visible from the sender's side.
func (s *MailboxService) Sent(userID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.Preload("Receiver").
		Where("sender_id = ? AND visible_to_sender = ?", userID, true).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

// ClearForReceiver removes the given messages from the receiver's view.
// Rows the sender has already cleared are deleted outright; the rest only
// flip the receiver flag. Returns the number of rows affected either way.
func (s *MailboxService) ClearForReceiver(userID uint, messageIDs []uint) (int, error) {
	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range messageIDs {
			var msg models.Message
			err := tx.Where("id = ? AND receiver_id = ?", id, userID).First(&msg).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if !msg.VisibleToSender {
				if err := tx.Delete(&msg).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&msg).Update("visible_to_receiver", false).Error; err != nil {
					return err
				}
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ClearForSender is the symmetric operation for the sender's view. Clearing
// a sent message also force-marks it read for the receiver; that coupling is
// deliberate legacy behavior, kept here in one place so it can be decoupled
// later without touching call sites.
func (s *MailboxService) ClearForSender(userID uint, messageIDs []uint) (int, error) {
	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range messageIDs {
			var msg models.Message
			err := tx.Where("id = ? AND sender_id = ?", id, userID).First(&msg).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if err := tx.Model(&msg).Update("read_by_receiver", true).Error; err != nil {
				return err
			}

			if !msg.VisibleToReceiver {
				if err := tx.Delete(&msg).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&msg).Update("visible_to_sender", false).Error; err != nil {
					return err
				}
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ClearAllForUser empties one side of a member's mailbox as two batched
// statements: rows already invisible on the other side are deleted, the rest
// flip this side's flag.
func (s *MailboxService) ClearAllForUser(userID uint, side MailboxSide) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		switch side {
		case SideReceived:
			if err := tx.Where("receiver_id = ? AND visible_to_receiver = ? AND visible_to_sender = ?",
				userID, true, false).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Message{}).
				Where("receiver_id = ? AND visible_to_receiver = ?", userID, true).
				Update("visible_to_receiver", false).Error

		case SideSent:
			if err := tx.Where("sender_id = ? AND visible_to_sender = ? AND visible_to_receiver = ?",
				userID, true, false).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Message{}).
				Where("sender_id = ? AND visible_to_sender = ?", userID, true).
				Update("visible_to_sender", false).Error
		}
		return errors.New("unknown mailbox side")
	})
}

// MarkRead sets the read flag and reports whether anything changed, so the
// caller can distinguish newly-read from already-read.
func (s *MailboxService) MarkRead(userID, messageID uint) (bool, error) {
	res := s.db.Model(&models.Message{}).
		Where("id = ? AND receiver_id = ? AND read_by_receiver = ?", messageID, userID, false).
		Update("read_by_receiver", true)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := s.db.Model(&models.Message{}).
		Where("id = ? AND receiver_id = ?", messageID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// UnreadCount counts unread received messages. Visibility flags are
// ignored on purpose: a message the receiver cleared from their own view
// still counts. Legacy behavior, kept for fidelity.
func (s *MailboxService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read_by_receiver = ?", userID, false).
		Count(&count).Error
	return count, err
}
