package services

import (
	"github.com/studylink/api-go/models"
	"gorm.io/gorm"
)

// Viewer is the resolved caller identity. A nil *Viewer is an anonymous
// caller; Moderator viewers see hidden posts.
type Viewer struct {
	ID        uint
	Moderator bool
}

// VisibilityService decides whether a viewer may read a post. Rules are
// evaluated in order, first match wins, and anything unmatched is denied.
type VisibilityService struct {
	db *gorm.DB
}

func NewVisibilityService(db *gorm.DB) *VisibilityService {
	return &VisibilityService{db: db}
}

// CanView reports whether viewer may read post. Lookup failures deny.
func (s *VisibilityService) CanView(post *models.Post, viewer *Viewer) (bool, error) {
	allowed, _, err := s.resolve(post, viewer)
	return allowed, err
}

// AssertCanView returns a *VisibilityDeniedError carrying the denial
// reason when viewer may not read post.
func (s *VisibilityService) AssertCanView(post *models.Post, viewer *Viewer) error {
	allowed, reason, err := s.resolve(post, viewer)
	if err != nil {
		return err
	}
	if !allowed {
		return &VisibilityDeniedError{Reason: reason}
	}
	return nil
}

// FilterVisible applies CanView to each post independently, preserving
// relative order. Used when rendering feeds and listings.
func (s *VisibilityService) FilterVisible(posts []models.Post, viewer *Viewer) ([]models.Post, error) {
	visible := make([]models.Post, 0, len(posts))
	for i := range posts {
		ok, err := s.CanView(&posts[i], viewer)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, posts[i])
		}
	}
	return visible, nil
}

func (s *VisibilityService) resolve(post *models.Post, viewer *Viewer) (bool, DenialReason, error) {
	// Moderator hide overrides everything except the owner's and a
	// moderator's own view.
	if post.Hidden {
		if viewer == nil || (viewer.ID != post.UserID && !viewer.Moderator) {
			return false, DenialHidden, nil
		}
	}

	if post.Visibility == models.VisibilityPublic {
		return true, "", nil
	}

	// Anonymous callers only ever see public posts.
	if viewer == nil {
		return false, DenialNotLoggedIn, nil
	}

	// The owner always sees their own content regardless of mode.
	if viewer.ID == post.UserID {
		return true, "", nil
	}

	if post.Visibility == models.VisibilityPrivate {
		return false, DenialOwnerOnly, nil
	}

	if post.Visibility == models.VisibilityFollow {
		var count int64
		err := s.db.Model(&models.FollowEdge{}).
			Where("follower_id = ? AND followed_id = ? AND status = ?",
				viewer.ID, post.UserID, models.FollowAccepted).
			Count(&count).Error
		if err != nil {
			return false, "", err
		}
		if count > 0 {
			return true, "", nil
		}
		return false, DenialFollowRequired, nil
	}

	// Unknown visibility value: fail closed.
	return false, DenialOwnerOnly, nil
}
