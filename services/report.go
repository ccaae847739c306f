package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/storage"
	"gorm.io/gorm"
)

// ReportAction is the closed set of moderation actions. Unknown strings
// fail at parse time instead of falling through a default branch.
type ReportAction string

const (
	ActionHide    ReportAction = "HIDE"
	ActionDelete  ReportAction = "DELETE"
	ActionSuspend ReportAction = "SUSPEND"
)

func ParseReportAction(s string) (ReportAction, error) {
	switch ReportAction(s) {
	case ActionHide, ActionDelete, ActionSuspend:
		return ReportAction(s), nil
	}
	return "", ErrInvalidAction
}

// ReportService tracks content reports from submission through resolution.
// Reports are never deleted; status moves pending -> resolved exactly once.
type ReportService struct {
	db          *gorm.DB
	suspensions *SuspensionService
	images      storage.ImageStore
}

func NewReportService(db *gorm.DB, suspensions *SuspensionService, images storage.ImageStore) *ReportService {
	return &ReportService{db: db, suspensions: suspensions, images: images}
}

// Submit files a report against a post. No de-duplication: the same member
// may report the same post repeatedly.
func (s *ReportService) Submit(postID, reporterID uint, reason string) (*models.Report, error) {
	var reporter models.User
	if err := s.db.First(&reporter, reporterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	report := models.Report{
		PostID:     postID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.ReportPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Process applies a moderation action and resolves the report in one
// transaction. The status flip is a conditional update; zero rows affected
// means another moderator got there first and surfaces as ErrAlreadyProcessed
// without re-applying the action.
func (s *ReportService) Process(reportID uint, action ReportAction, suspendUntil *time.Time, suspendReason string) error {
	var removedImages []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.ReportPending).
			Update("status", models.ReportResolved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		switch action {
		case ActionHide:
			// No-op when the post is already gone; the report still resolves.
			return tx.Model(&models.Post{}).
				Where("id = ?", report.PostID).
				Update("hidden", true).Error

		case ActionDelete:
			var post models.Post
			err := tx.First(&post, report.PostID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			removedImages = post.Images
			return deletePostCascade(tx, &post)

		case ActionSuspend:
			if suspendUntil == nil {
				return ErrInvalidAction
			}
			var post models.Post
			if err := tx.First(&post, report.PostID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			// Always the post's author, never the reporter.
			return s.suspensions.apply(tx, post.UserID, *suspendUntil, suspendReason)
		}

		return ErrInvalidAction
	})
	if err != nil {
		return err
	}

	// Object-store cleanup happens after commit; a failure here must not
	// undo the moderation decision.
	if len(removedImages) > 0 {
		if err := s.images.Remove(context.Background(), removedImages); err != nil {
			log.Printf("failed to remove images for report %d: %v", reportID, err)
		}
	}
	return nil
}

// PendingCount backs the admin dashboard badge.
func (s *ReportService) PendingCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Report{}).
		Where("status = ?", models.ReportPending).
		Count(&count).Error
	return count, err
}

// Recent returns the n most recent reports, newest first.
func (s *ReportService) Recent(n int) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Preload("Reporter").
		Order("created_at DESC").
		Limit(n).
		Find(&reports).Error
	return reports, err
}

func (s *ReportService) All() ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Preload("Reporter").Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (s *ReportService) Get(reportID uint) (*models.Report, error) {
	var report models.Report
	if err := s.db.Preload("Reporter").First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// deletePostCascade removes a post and its dependent rows. Shared by
// moderation delete, author delete and withdrawal.
func deletePostCascade(tx *gorm.DB, post *models.Post) error {
	if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.Scrap{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.Reply{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(post).Error
}
