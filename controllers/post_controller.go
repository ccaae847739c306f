package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/storage"
	"github.com/studylink/api-go/utils"
	"gorm.io/gorm"
)

type PostController struct {
	DB          *gorm.DB
	Visibility  *services.VisibilityService
	Suspensions *services.SuspensionService
	Images      storage.ImageStore
}

type CreatePostRequest struct {
	Type       string   `json:"type" binding:"omitempty,oneof=daily study"`
	Category   string   `json:"category"`
	Title      string   `json:"title" binding:"required,max=50"`
	Content    string   `json:"content" binding:"required,max=2000"`
	Visibility string   `json:"visibility" binding:"omitempty,oneof=public follow private"`
	Images     []string `json:"images"`
	Tags       []string `json:"tags"`
}

type UpdatePostRequest struct {
	Category   string   `json:"category"`
	Title      string   `json:"title" binding:"omitempty,max=50"`
	Content    string   `json:"content" binding:"omitempty,max=2000"`
	Visibility string   `json:"visibility" binding:"omitempty,oneof=public follow private"`
	Images     []string `json:"images"`
	Tags       []string `json:"tags"`
}

func NewPostController(db *gorm.DB, visibility *services.VisibilityService, suspensions *services.SuspensionService, images storage.ImageStore) *PostController {
	return &PostController{DB: db, Visibility: visibility, Suspensions: suspensions, Images: images}
}

func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var author models.User
	if err := pc.DB.First(&author, user.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load member"})
		return
	}

	// A still-valid token does not outrun a suspension.
	if err := pc.Suspensions.CheckActive(&author); err != nil {
		respondError(c, err)
		return
	}

	// An unset visibility falls back to the author's default preference.
	visibility := req.Visibility
	if visibility == "" {
		visibility = author.Visibility
	}

	postType := req.Type
	if postType == "" {
		postType = "daily"
	}

	post := models.Post{
		UserID:     user.UserID,
		Type:       postType,
		Category:   req.Category,
		Title:      req.Title,
		Content:    req.Content,
		Visibility: visibility,
		Images:     req.Images,
		Tags:       req.Tags,
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (pc *PostController) GetPostDetail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var post models.Post
	if err := pc.DB.Preload("User").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	viewer := utils.GetUser(c).Viewer()
	if err := pc.Visibility.AssertCanView(&post, viewer); err != nil {
		respondError(c, err)
		return
	}

	pc.DB.Model(&post).UpdateColumn("read_hit", gorm.Expr("read_hit + 1"))

	var replyCount int64
	pc.DB.Model(&models.Reply{}).
		Where("post_id = ? AND status = ?", post.ID, models.ReplyActive).
		Count(&replyCount)

	c.JSON(http.StatusOK, gin.H{"post": post, "replyCount": replyCount})
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Category != "" {
		post.Category = req.Category
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Visibility != "" {
		post.Visibility = req.Visibility
	}
	if req.Images != nil {
		post.Images = req.Images
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if err := pc.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != user.UserID && !user.IsModerator() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	removedImages := post.Images

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.Scrap{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if len(removedImages) > 0 {
		if err := pc.Images.Remove(context.Background(), removedImages); err != nil {
			log.Printf("failed to remove images for post %d: %v", post.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMemberPosts lists a member's posts, filtered by what the caller may see.
func (pc *PostController) GetMemberPosts(c *gin.Context) {
	memberID := c.Param("userId")

	var posts []models.Post
	if err := pc.DB.Preload("User").
		Where("user_id = ?", memberID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	viewer := utils.GetUser(c).Viewer()
	visible, err := pc.Visibility.FilterVisible(posts, viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": visible})
}

// PresignImageUpload hands the client a direct-to-bucket upload URL.
func (pc *PostController) PresignImageUpload(c *gin.Context) {
	var input struct {
		ContentType string `json:"contentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploadURL, key, err := pc.Images.PresignUpload(c.Request.Context(), input.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not presign upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"key":       key,
		"fileUrl":   pc.Images.PublicURL(key),
	})
}
