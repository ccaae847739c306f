package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
	"gorm.io/gorm"
)

type ReplyController struct {
	DB          *gorm.DB
	Replies     *services.ReplyService
	Visibility  *services.VisibilityService
	Suspensions *services.SuspensionService
}

func NewReplyController(db *gorm.DB, replies *services.ReplyService, visibility *services.VisibilityService, suspensions *services.SuspensionService) *ReplyController {
	return &ReplyController{DB: db, Replies: replies, Visibility: visibility, Suspensions: suspensions}
}

// loadViewablePost resolves the :id post and checks the caller may see it.
func (rc *ReplyController) loadViewablePost(c *gin.Context) (*models.Post, bool) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return nil, false
	}

	var post models.Post
	if err := rc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}

	if err := rc.Visibility.AssertCanView(&post, utils.GetUser(c).Viewer()); err != nil {
		respondError(c, err)
		return nil, false
	}
	return &post, true
}

// Create adds a reply to a post the caller can see.
func (rc *ReplyController) Create(c *gin.Context) {
	user := utils.GetUser(c)

	post, ok := rc.loadViewablePost(c)
	if !ok {
		return
	}

	var input struct {
		Content  string `json:"content" binding:"required,max=1000"`
		ParentID *uint  `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var author models.User
	if err := rc.DB.First(&author, user.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load member"})
		return
	}
	if err := rc.Suspensions.CheckActive(&author); err != nil {
		respondError(c, err)
		return
	}

	reply, err := rc.Replies.Create(post.ID, user.UserID, input.ParentID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// List returns a post's replies, oldest first.
func (rc *ReplyController) List(c *gin.Context) {
	post, ok := rc.loadViewablePost(c)
	if !ok {
		return
	}

	replies, err := rc.Replies.ListForPost(post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

func (rc *ReplyController) Update(c *gin.Context) {
	user := utils.GetUser(c)
	replyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reply id"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := rc.Replies.Update(uint(replyID), user.UserID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (rc *ReplyController) Delete(c *gin.Context) {
	user := utils.GetUser(c)
	replyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reply id"})
		return
	}

	if err := rc.Replies.Delete(uint(replyID), user.UserID, user.IsModerator()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
