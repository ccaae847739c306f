package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/studylink/api-go/controllers"
	"github.com/studylink/api-go/middleware"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/storage"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, images storage.ImageStore) {
	// Initialize services
	visibility := services.NewVisibilityService(db)
	suspensions := services.NewSuspensionService(db)
	notifications := services.NewNotificationService(db)
	follows := services.NewFollowService(db, notifications)
	reports := services.NewReportService(db, suspensions, images)
	mailbox := services.NewMailboxService(db)
	replies := services.NewReplyService(db, notifications)
	members := services.NewMemberService(db, follows, replies, images)
	verifications := services.NewVerificationService(rdb, 0)

	// Initialize controllers
	authController := controllers.NewAuthController(db, suspensions, members, verifications)
	postController := controllers.NewPostController(db, visibility, suspensions, images)
	feedController := controllers.NewFeedController(db, visibility)
	followController := controllers.NewFollowController(follows, members)
	messageController := controllers.NewMessageController(mailbox, members)
	reportController := controllers.NewReportController(reports)
	adminController := controllers.NewAdminController(db, reports, suspensions)
	interactionController := controllers.NewInteractionController(db, visibility)
	notificationController := controllers.NewNotificationController(notifications)
	replyController := controllers.NewReplyController(db, replies, visibility, suspensions)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/nickname-check", authController.NicknameCheck)
		public.POST("/verify/request", authController.RequestVerification)
		public.POST("/verify/confirm", authController.ConfirmVerification)
	}

	// Readable logged out; claims are resolved when present so follow-mode
	// and own posts show up for logged-in callers.
	optional := r.Group("/api")
	optional.Use(middleware.OptionalAuthMiddleware())
	{
		optional.GET("/posts/:id", postController.GetPostDetail)
		optional.GET("/posts/:id/replies", replyController.List)
		optional.GET("/feed", feedController.GetFeed)
		optional.GET("/users/:userId/posts", postController.GetMemberPosts)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)
		protected.DELETE("/profile", authController.Withdraw)

		SetupPostRoutes(protected, postController, reportController, interactionController)
		SetupReplyRoutes(protected, replyController)
		SetupFollowRoutes(protected, followController)
		SetupMessageRoutes(protected, messageController)
		SetupNotificationRoutes(protected, notificationController)
	}

	// Moderator routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.ModeratorOnly())
	{
		SetupAdminRoutes(admin, adminController)
	}
}
