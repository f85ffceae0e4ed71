package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/database"
	"github.com/anjuman-committee/community-backend/internal/auditlog"
	"github.com/anjuman-committee/community-backend/internal/auth"
	"github.com/anjuman-committee/community-backend/internal/category"
	"github.com/anjuman-committee/community-backend/internal/donation"
	"github.com/anjuman-committee/community-backend/internal/khandan"
	"github.com/anjuman-committee/community-backend/internal/notice"
	"github.com/anjuman-committee/community-backend/internal/notification"
	"github.com/anjuman-committee/community-backend/internal/team"
	"github.com/anjuman-committee/community-backend/routes"
	"github.com/anjuman-committee/community-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Redis backs the rate limiter when configured; the limiter falls
	// back to an in-memory store otherwise.
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed, continuing with in-memory rate limiting: %v", err)
	}

	// Kafka carries notification jobs off the request path.
	utils.InitializeKafka(cfg)

	if err := utils.InitFirebase(cfg); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	}

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&khandan.Khandan{},
		&category.Category{},
		&notice.Notice{},
		&team.Member{},
		&donation.Donation{},
		&auditlog.AuditLog{},
		&notification.NotificationLog{},
		&notification.DeviceToken{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		panic(fmt.Sprintf("❌ Failed to create upload directory: %v", err))
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	log.Printf("📁 Upload directory: %s", cfg.UploadDir)

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
