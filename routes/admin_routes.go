package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/controllers"
)

func SetupAdminRoutes(admin *gin.RouterGroup, adminController *controllers.AdminController) {
	members := admin.Group("/members")
	{
		members.GET("", adminController.ListMembers)
		members.POST("/:memberId/suspend", adminController.SuspendMember)
		members.POST("/:memberId/unsuspend", adminController.UnsuspendMember)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("", adminController.ListReports)
		reports.GET("/pending-count", adminController.PendingReportCount)
		reports.GET("/recent", adminController.RecentReports)
		reports.POST("/process", adminController.ProcessReport)
	}
}
