package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
)

func SetupMessageRoutes(protected *gin.RouterGroup, messageController *controllers.MessageController) {
	messages := protected.Group("/messages")
	{
		messages.POST("", messageController.Send)
		messages.GET("/received", messageController.Received)
		messages.GET("/sent", messageController.Sent)
		messages.POST("/received/clear", messageController.ClearReceived)
		messages.POST("/sent/clear", messageController.ClearSent)
		messages.POST("/clear-all", messageController.ClearAll)
		messages.POST("/read/:id", messageController.MarkRead)
		messages.GET("/unread-count", messageController.UnreadCount)
	}
}
