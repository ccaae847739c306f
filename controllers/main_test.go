package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
	"github.com/studylink/api-go/middleware"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/storage"
	"github.com/studylink/api-go/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.Post{}, &models.FollowEdge{}, &models.Report{},
		&models.Message{}, &models.Notification{}, &models.Like{}, &models.Scrap{},
		&models.Reply{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	t.Helper()

	user := models.User{
		Nickname:   nickname,
		Name:       nickname,
		Email:      fmt.Sprintf("%s@example.com", nickname),
		Password:   "hashed",
		Visibility: models.VisibilityPublic,
		Status:     models.StatusActive,
		Role:       models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", nickname, err)
	}
	return &user
}

func authHeader(t *testing.T, user *models.User) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}

// newTestRouter wires the post and interaction endpoints the way
// routes.SetupRoutes does, against a test database.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	visibility := services.NewVisibilityService(db)
	suspensions := services.NewSuspensionService(db)
	postController := controllers.NewPostController(db, visibility, suspensions, storage.NoopStore{})
	interactionController := controllers.NewInteractionController(db, visibility)

	r := gin.New()
	protected := r.Group("/api", middleware.AuthMiddleware())
	protected.POST("/posts", postController.CreatePost)
	protected.POST("/posts/:id/like", interactionController.LikePost)
	protected.POST("/posts/:id/scrap", interactionController.ScrapPost)
	protected.GET("/scraps", interactionController.GetScraps)
	return r
}
