package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
	"gorm.io/gorm"
)

type FeedController struct {
	DB         *gorm.DB
	Visibility *services.VisibilityService
}

type FeedQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=50"`
	Type     string `form:"type" binding:"omitempty,oneof=daily study"`
	Category string `form:"category"`
}

func NewFeedController(db *gorm.DB, visibility *services.VisibilityService) *FeedController {
	return &FeedController{DB: db, Visibility: visibility}
}

// GetFeed returns recent posts the caller may see, newest first. Visibility
// is applied per post after the page is fetched, so a page can come back
// short; clients page until empty.
func (fc *FeedController) GetFeed(c *gin.Context) {
	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := fc.DB.Preload("User").Order("created_at DESC")
	if query.Type != "" {
		db = db.Where("type = ?", query.Type)
	}
	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}

	var posts []models.Post
	offset := (query.Page - 1) * query.PageSize
	if err := db.Offset(offset).Limit(query.PageSize).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	viewer := utils.GetUser(c).Viewer()
	visible, err := fc.Visibility.FilterVisible(posts, viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    visible,
		"page":     query.Page,
		"pageSize": query.PageSize,
	})
}
