package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB         *gorm.DB
	Visibility *services.VisibilityService
}

func NewInteractionController(db *gorm.DB, visibility *services.VisibilityService) *InteractionController {
	return &InteractionController{DB: db, Visibility: visibility}
}

// LikePost toggles the caller's like on a post and adjusts the counter.
func (ic *InteractionController) LikePost(c *gin.Context) {
	postID := c.Param("id")
	user := utils.GetUser(c)

	var post models.Post
	if err := ic.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Like
	err := ic.DB.Where("post_id = ? AND user_id = ?", post.ID, user.UserID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	tx := ic.DB.Begin()

	if errors.Is(err, gorm.ErrRecordNotFound) {
		like := models.Like{UserID: user.UserID, PostID: post.ID}
		if err := tx.Create(&like).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}
		if err := tx.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}
		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"liked": true})
	} else {
		if err := tx.Unscoped().Delete(&existing).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}
		if err := tx.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}
		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"liked": false})
	}
}

// ScrapPost toggles the caller's scrap (bookmark) on a post.
func (ic *InteractionController) ScrapPost(c *gin.Context) {
	postID := c.Param("id")
	user := utils.GetUser(c)

	var post models.Post
	if err := ic.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Scrap
	err := ic.DB.Where("post_id = ? AND user_id = ?", post.ID, user.UserID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scrap post"})
		return
	}

	tx := ic.DB.Begin()

	if errors.Is(err, gorm.ErrRecordNotFound) {
		scrap := models.Scrap{UserID: user.UserID, PostID: post.ID}
		if err := tx.Create(&scrap).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scrap post"})
			return
		}
		if err := tx.Model(&post).UpdateColumn("scrap_count", gorm.Expr("scrap_count + 1")).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scrap post"})
			return
		}
		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"scrapped": true})
	} else {
		if err := tx.Unscoped().Delete(&existing).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unscrap post"})
			return
		}
		if err := tx.Model(&post).UpdateColumn("scrap_count", gorm.Expr("scrap_count - 1")).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unscrap post"})
			return
		}
		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"scrapped": false})
	}
}

// GetScraps lists the caller's scrapped posts. A post hidden or locked down
// after being scrapped drops out of the listing like everywhere else.
func (ic *InteractionController) GetScraps(c *gin.Context) {
	user := utils.GetUser(c)

	var posts []models.Post
	err := ic.DB.Preload("User").
		Joins("JOIN scraps ON scraps.post_id = posts.id").
		Where("scraps.user_id = ? AND scraps.deleted_at IS NULL", user.UserID).
		Order("scraps.created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scraps"})
		return
	}

	visible, err := ic.Visibility.FilterVisible(posts, user.Viewer())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": visible})
}
