package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
)

func SetupFollowRoutes(protected *gin.RouterGroup, followController *controllers.FollowController) {
	follows := protected.Group("/follows")
	{
		follows.POST("/:nickname", followController.Follow)
		follows.DELETE("/:nickname", followController.Unfollow)
		follows.GET("/:nickname/followers", followController.Followers)
		follows.GET("/:nickname/following", followController.Following)
	}

	requests := protected.Group("/follow-requests")
	{
		requests.GET("", followController.PendingRequests)
		requests.POST("/:followerId/accept", followController.Accept)
		requests.POST("/:followerId/reject", followController.Reject)
	}
}
