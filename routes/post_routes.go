package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController, reportController *controllers.ReportController, interactionController *controllers.InteractionController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/report", reportController.Submit)
		posts.POST("/:id/like", interactionController.LikePost)
		posts.POST("/:id/scrap", interactionController.ScrapPost)
	}

	protected.GET("/scraps", interactionController.GetScraps)
	protected.POST("/uploads/presign", postController.PresignImageUpload)
}
