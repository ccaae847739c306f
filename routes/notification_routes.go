package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationController.List)
		notifications.POST("/read/:id", notificationController.MarkRead)
		notifications.GET("/unread-count", notificationController.UnreadCount)
	}
}
