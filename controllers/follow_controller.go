package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
)

type FollowController struct {
	Follows *services.FollowService
	Members *services.MemberService
}

func NewFollowController(follows *services.FollowService, members *services.MemberService) *FollowController {
	return &FollowController{Follows: follows, Members: members}
}

func (fc *FollowController) Follow(c *gin.Context) {
	user := utils.GetUser(c)
	nickname := c.Param("nickname")

	edge, err := fc.Follows.Follow(user.UserID, nickname)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": edge.Status})
}

func (fc *FollowController) Unfollow(c *gin.Context) {
	user := utils.GetUser(c)
	nickname := c.Param("nickname")

	if err := fc.Follows.Unfollow(user.UserID, nickname); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (fc *FollowController) Accept(c *gin.Context) {
	user := utils.GetUser(c)
	followerID, err := strconv.ParseUint(c.Param("followerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	if err := fc.Follows.Accept(user.UserID, uint(followerID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (fc *FollowController) Reject(c *gin.Context) {
	user := utils.GetUser(c)
	followerID, err := strconv.ParseUint(c.Param("followerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	if err := fc.Follows.Reject(user.UserID, uint(followerID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (fc *FollowController) Followers(c *gin.Context) {
	member, err := fc.Members.GetByNickname(c.Param("nickname"))
	if err != nil {
		respondError(c, err)
		return
	}

	followers, err := fc.Follows.Followers(member.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (fc *FollowController) Following(c *gin.Context) {
	member, err := fc.Members.GetByNickname(c.Param("nickname"))
	if err != nil {
		respondError(c, err)
		return
	}

	following, err := fc.Follows.Following(member.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (fc *FollowController) PendingRequests(c *gin.Context) {
	user := utils.GetUser(c)

	pending, err := fc.Follows.PendingRequests(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}
