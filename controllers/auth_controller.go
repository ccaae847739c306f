package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultProfileImage = "/icon/profileimage.png"

type AuthController struct {
	DB            *gorm.DB
	Suspensions   *services.SuspensionService
	Members       *services.MemberService
	Verifications *services.VerificationService
}

func NewAuthController(db *gorm.DB, suspensions *services.SuspensionService, members *services.MemberService, verifications *services.VerificationService) *AuthController {
	return &AuthController{
		DB:            db,
		Suspensions:   suspensions,
		Members:       members,
		Verifications: verifications,
	}
}

// validateNicknamePattern validates nickname format and constraints
func validateNicknamePattern(nickname string) error {
	trimmed := strings.TrimSpace(nickname)

	if len(trimmed) < 2 {
		return fmt.Errorf("nickname must be at least 2 characters long")
	}
	if len(trimmed) > 20 {
		return fmt.Errorf("nickname must be no more than 20 characters long")
	}

	validPattern, _ := regexp.MatchString(`^[a-zA-Z0-9가-힣_]+$`, trimmed)
	if !validPattern {
		return fmt.Errorf("nickname can only contain letters, numbers, and underscores")
	}

	return nil
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Nickname   string `json:"nickname" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=6"`
		Phone      string `json:"phone"`
		Introduce  string `json:"introduce"`
		Visibility string `json:"visibility" binding:"omitempty,oneof=public follow private"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := validateNicknamePattern(input.Nickname); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	user := models.User{
		Nickname:   input.Nickname,
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashedPassword),
		Phone:      input.Phone,
		Photo:      defaultProfileImage,
		Introduce:  input.Introduce,
		Visibility: visibility,
		Status:     models.StatusActive,
		Role:       models.RoleUser,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname or email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Member registered successfully",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"nickname": user.Nickname,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Suspension is re-evaluated here, not read off the stored status: an
	// elapsed suspension logs in fine even before an explicit unsuspend.
	if err := ac.Suspensions.CheckLogin(&user); err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	user.LastLoginAt = &now
	ac.DB.Save(&user)

	token, err := utils.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"nickname": user.Nickname,
			"role":     user.Role,
		},
	})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	claims := utils.GetUser(c)
	user, err := ac.Members.Get(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var input struct {
		Nickname   string  `json:"nickname"`
		Name       string  `json:"name"`
		Introduce  *string `json:"introduce"`
		Visibility string  `json:"visibility" binding:"omitempty,oneof=public follow private"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Members.Get(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Nickname != "" && input.Nickname != user.Nickname {
		if err := validateNicknamePattern(input.Nickname); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var count int64
		ac.DB.Model(&models.User{}).Where("nickname = ?", input.Nickname).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Nickname already taken"})
			return
		}
		user.Nickname = input.Nickname
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Introduce != nil {
		user.Introduce = *input.Introduce
	}
	if input.Visibility != "" {
		user.Visibility = input.Visibility
	}

	if err := ac.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Withdraw terminates the calling member's account. Terminal.
func (ac *AuthController) Withdraw(c *gin.Context) {
	claims := utils.GetUser(c)
	if err := ac.Members.Withdraw(claims.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account withdrawn"})
}

func (ac *AuthController) RequestVerification(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := ac.Verifications.Issue(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue verification code"})
		return
	}

	// Delivery is the mailer's job; the code is returned only for it.
	c.JSON(http.StatusOK, gin.H{"success": true, "code": code})
}

func (ac *AuthController) ConfirmVerification(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := ac.Verifications.Confirm(c.Request.Context(), input.Email, input.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code", "success": false})
		return
	}

	ac.DB.Model(&models.User{}).Where("email = ?", input.Email).Update("email_verified", true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AuthController) NicknameCheck(c *gin.Context) {
	var input struct {
		Nickname string `json:"nickname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateNicknamePattern(input.Nickname); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "available": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("nickname = ?", input.Nickname).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"available": true})
		return
	}
	c.JSON(http.StatusConflict, gin.H{"error": "Nickname already taken", "available": false})
}
