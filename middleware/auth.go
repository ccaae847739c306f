package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/studylink/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func parseClaims(c *gin.Context) *utils.UserClaims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil
	}

	return &utils.UserClaims{
		UserID: uint(userID),
		Role:   role,
	}
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims := parseClaims(c)
		if userClaims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), userClaims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves claims when a valid token is present but
// lets anonymous callers through. Public posts are readable logged out.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userClaims := parseClaims(c); userClaims != nil {
			c.Set(string(utils.UserContextKey), userClaims)
		}
		c.Next()
	}
}

func ModeratorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		if !user.IsModerator() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Moderator access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
