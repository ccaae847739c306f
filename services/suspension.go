package services

import (
	"errors"
	"time"

	"github.com/studylink/api-go/models"
	"gorm.io/gorm"
)

// SuspensionService applies and evaluates time-boxed account suspensions.
// The stored status is never swept back to active when the expiry passes;
// IsCurrentlySuspended is the single source of truth and must be consulted
// at every authorization checkpoint.
type SuspensionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSuspensionService(db *gorm.DB) *SuspensionService {
	return &SuspensionService{db: db, now: time.Now}
}

func (s *SuspensionService) Suspend(userID uint, until time.Time, reason string) error {
	return s.apply(s.db, userID, until, reason)
}

func (s *SuspensionService) apply(tx *gorm.DB, userID uint, until time.Time, reason string) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	user.Status = models.StatusSuspended
	user.SuspendUntil = &until
	user.SuspendReason = reason
	return tx.Save(&user).Error
}

func (s *SuspensionService) Lift(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	user.Status = models.StatusActive
	user.SuspendUntil = nil
	user.SuspendReason = ""
	return s.db.Save(&user).Error
}

// IsCurrentlySuspended reports whether the suspension is still in force.
// A suspended status with an elapsed expiry no longer counts, even though
// the stored status stays "suspended" until an explicit unsuspend.
func (s *SuspensionService) IsCurrentlySuspended(user *models.User) bool {
	return user.Status == models.StatusSuspended &&
		user.SuspendUntil != nil &&
		user.SuspendUntil.After(s.now())
}

// CheckActive rejects an action by a withdrawn or currently-suspended member.
// Consulted wherever a member acts, not just at login: a suspension must bite
// even while an earlier-issued token is still valid. The returned
// *SuspendedError carries reason and expiry for display.
func (s *SuspensionService) CheckActive(user *models.User) error {
	if user.Status == models.StatusWithdrawn {
		return ErrWithdrawn
	}
	if s.IsCurrentlySuspended(user) {
		return &SuspendedError{Until: *user.SuspendUntil, Reason: user.SuspendReason}
	}
	return nil
}

// CheckLogin rejects a login attempt by a withdrawn or currently-suspended
// member.
func (s *SuspensionService) CheckLogin(user *models.User) error {
	return s.CheckActive(user)
}
