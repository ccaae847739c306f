package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyProcessed = errors.New("report already processed")
	ErrInvalidAction    = errors.New("unknown moderation action")
	ErrNotOwner         = errors.New("not the author")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this member")
	ErrWithdrawn        = errors.New("member has withdrawn")
)

// DenialReason identifies why a viewer may not read a post.
type DenialReason string

const (
	DenialNotLoggedIn    DenialReason = "not_logged_in"
	DenialFollowRequired DenialReason = "follow_required"
	DenialOwnerOnly      DenialReason = "owner_only"
	DenialHidden         DenialReason = "hidden"
)

type VisibilityDeniedError struct {
	Reason DenialReason
}

func (e *VisibilityDeniedError) Error() string {
	switch e.Reason {
	case DenialNotLoggedIn:
		return "this post requires login"
	case DenialFollowRequired:
		return "this post is visible to followers only"
	default:
		return "no permission to view this post"
	}
}

// SuspendedError is returned on login while a suspension is in force.
type SuspendedError struct {
	Until  time.Time
	Reason string
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("account suspended until %s: %s", e.Until.Format(time.RFC3339), e.Reason)
}
