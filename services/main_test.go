package services

import (
	"fmt"
	"testing"

	"github.com/studylink/api-go/models"
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

func createPost(t *testing.T, db *gorm.DB, owner *models.User, visibility string) *models.Post {
	t.Helper()

	post := models.Post{
		UserID:     owner.ID,
		Type:       "daily",
		Title:      "test post",
		Content:    "content",
		Visibility: visibility,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return &post
}

func acceptFollow(t *testing.T, db *gorm.DB, follower, followed *models.User) {
	t.Helper()

	edge := models.FollowEdge{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
		Status:     models.FollowAccepted,
	}
	if err := db.Create(&edge).Error; err != nil {
		t.Fatalf("failed to create follow edge: %v", err)
	}
}
