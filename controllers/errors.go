package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/services"
)

// respondError translates service errors into conventional status codes.
// Unexpected failures are logged and surfaced as a generic 500 without
// internal detail.
func respondError(c *gin.Context, err error) {
	var denied *services.VisibilityDeniedError
	if errors.As(err, &denied) {
		switch denied.Reason {
		case services.DenialNotLoggedIn:
			c.JSON(http.StatusUnauthorized, gin.H{"error": denied.Error()})
		case services.DenialFollowRequired:
			c.JSON(http.StatusForbidden, gin.H{"error": denied.Error()})
		default:
			// Owner-only and hidden denials must be indistinguishable
			// from a missing post.
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		}
		return
	}

	var suspended *services.SuspendedError
	if errors.As(err, &suspended) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":         "Account suspended",
			"suspend_until": suspended.Until,
			"reason":        suspended.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
	case errors.Is(err, services.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"error": "Report already processed"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the author"})
	case errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrWithdrawn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
