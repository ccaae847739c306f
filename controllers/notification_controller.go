package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

func (nc *NotificationController) List(c *gin.Context) {
	user := utils.GetUser(c)
	notifications, err := nc.Notifications.List(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	user := utils.GetUser(c)
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if err := nc.Notifications.MarkRead(user.UserID, uint(notificationID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	user := utils.GetUser(c)
	count, err := nc.Notifications.UnreadCount(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
