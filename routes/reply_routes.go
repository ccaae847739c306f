package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
)

func SetupReplyRoutes(protected *gin.RouterGroup, replyController *controllers.ReplyController) {
	protected.POST("/posts/:id/replies", replyController.Create)

	replies := protected.Group("/replies")
	{
		replies.PUT("/:id", replyController.Update)
		replies.DELETE("/:id", replyController.Delete)
	}
}
