package utils

import (
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
)

type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func (uc *UserClaims) IsModerator() bool {
	return uc.Role == models.RoleAdmin
}

// Viewer converts the claims into the visibility resolver's caller identity.
func (uc *UserClaims) Viewer() *services.Viewer {
	if uc == nil {
		return nil
	}
	return &services.Viewer{ID: uc.UserID, Moderator: uc.IsModerator()}
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

func GenerateToken(user *models.User) (string, error) {
	tokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return tokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
