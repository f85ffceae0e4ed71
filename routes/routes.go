package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/database"
	"github.com/anjuman-committee/community-backend/internal/auditlog"
	"github.com/anjuman-committee/community-backend/internal/auth"
	"github.com/anjuman-committee/community-backend/internal/category"
	"github.com/anjuman-committee/community-backend/internal/dashboard"
	"github.com/anjuman-committee/community-backend/internal/donation"
	"github.com/anjuman-committee/community-backend/internal/khandan"
	"github.com/anjuman-committee/community-backend/internal/notice"
	"github.com/anjuman-committee/community-backend/internal/notification"
	"github.com/anjuman-committee/community-backend/internal/team"
	"github.com/anjuman-committee/community-backend/middleware"

	_ "github.com/anjuman-committee/community-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module and mounts the HTTP surface.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Team member photos
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.ClientIP())

	// ========== Module wiring ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, cfg)
	notifHandler := notification.NewHandler(notifSvc)

	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, notifSvc, cfg, auditSvc)
	authHandler := auth.NewHandler(authSvc)

	khandanRepo := khandan.NewRepository(database.DB)
	khandanSvc := khandan.NewService(khandanRepo)
	khandanHandler := khandan.NewHandler(khandanSvc)

	categoryRepo := category.NewRepository(database.DB)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	noticeRepo := notice.NewRepository(database.DB)
	noticeSvc := notice.NewService(noticeRepo, notifSvc)
	noticeHandler := notice.NewHandler(noticeSvc)

	teamRepo := team.NewRepository(database.DB)
	teamSvc := team.NewService(teamRepo, cfg)
	teamHandler := team.NewHandler(teamSvc)

	donationRepo := donation.NewRepository(database.DB)
	donationSvc := donation.NewService(donationRepo, categorySvc, cfg, auditSvc, notifSvc)
	donationHandler := donation.NewHandler(donationSvc)

	dashboardRepo := dashboard.NewRepository(database.DB)
	dashboardSvc := dashboard.NewService(dashboardRepo)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	// ========== Public ==========
	public := api.Group("/c")
	{
		public.GET("/notice-list", noticeHandler.ListNotices)
		public.GET("/notice/:id", noticeHandler.GetNotice)
		public.GET("/get-team-members", teamHandler.ListMembers)
		public.GET("/category-list", categoryHandler.ListCategories)
	}

	// Khandan reads are public so the registration form can offer the
	// family list; writes sit under the admin group below.
	api.GET("/khandan", khandanHandler.ListKhandans)
	api.GET("/khandan/:id", khandanHandler.GetKhandan)

	// ========== User ==========
	user := api.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)

		authed := user.Group("")
		authed.Use(middleware.UserAuth(cfg, authSvc))
		{
			authed.GET("/get-profile", authHandler.GetProfile)
			authed.POST("/update-profile", authHandler.UpdateProfile)
			authed.POST("/change-password", authHandler.ChangePassword)

			authed.POST("/create-donation-order", donationHandler.CreateDonation)
			authed.POST("/verify-donation-payment", donationHandler.VerifyPayment)
			authed.GET("/my-donations", donationHandler.MyDonations)
			authed.GET("/donation-receipt/:id", donationHandler.DownloadReceipt)

			authed.POST("/device-token", notifHandler.RegisterDeviceToken)
			authed.DELETE("/device-token", notifHandler.RemoveDeviceToken)
		}
	}

	// ========== Admin ==========
	admin := api.Group("/admin")
	admin.POST("/login", authHandler.AdminLogin)

	gated := admin.Group("")
	gated.Use(middleware.AdminAuth(cfg), middleware.AuditTrail(auditSvc))
	{
		gated.POST("/khandan", khandanHandler.CreateKhandan)
		gated.PUT("/khandan/:id", khandanHandler.UpdateKhandan)
		gated.DELETE("/khandan/:id", khandanHandler.DeleteKhandan)

		gated.GET("/notice/:id", noticeHandler.GetNotice)
		gated.POST("/notice", noticeHandler.CreateNotice)
		gated.PUT("/notice/:id", noticeHandler.UpdateNotice)
		gated.DELETE("/notice/:id", noticeHandler.DeleteNotice)

		gated.GET("/category", categoryHandler.ListAllCategories)
		gated.GET("/category/:id", categoryHandler.GetCategory)
		gated.POST("/category", categoryHandler.CreateCategory)
		gated.PUT("/category/:id", categoryHandler.UpdateCategory)
		gated.DELETE("/category/:id", categoryHandler.DeleteCategory)

		gated.GET("/team", teamHandler.ListAllMembers)
		gated.GET("/team/:id", teamHandler.GetMember)
		gated.POST("/team", teamHandler.CreateMember)
		gated.PUT("/team/:id", teamHandler.UpdateMember)
		gated.DELETE("/team/:id", teamHandler.DeleteMember)

		gated.GET("/donation-list", donationHandler.ListDonations)
		gated.GET("/donation-export", donationHandler.ExportDonations)
		gated.GET("/donation-receipt/:id", donationHandler.DownloadReceipt)

		gated.GET("/dashboard", dashboardHandler.GetOverview)
		gated.GET("/dashboard/stats", dashboardHandler.GetStats)
		gated.GET("/dashboard/user-histogram", dashboardHandler.GetUserHistogram)
		gated.GET("/dashboard/donation-histogram", dashboardHandler.GetDonationHistogram)
		gated.GET("/dashboard/category-breakdown", dashboardHandler.GetCategoryBreakdown)
		gated.GET("/dashboard/years", dashboardHandler.GetAvailableYears)

		gated.GET("/audit-logs", auditHandler.GetAuditLogs)
		gated.GET("/audit-logs/:id", auditHandler.GetAuditLogByID)
	}

	// Kafka consumer drains queued notification jobs; no-op when Kafka
	// is not configured.
	notification.StartKafkaConsumer(notifSvc)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
