package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sharath018/property-board-backend/config"
	"github.com/sharath018/property-board-backend/database"
	"github.com/sharath018/property-board-backend/internal/auditlog"
	"github.com/sharath018/property-board-backend/internal/auth"
	"github.com/sharath018/property-board-backend/internal/board"
	"github.com/sharath018/property-board-backend/internal/ledger"
	"github.com/sharath018/property-board-backend/internal/notification"
	"github.com/sharath018/property-board-backend/internal/property"
	"github.com/sharath018/property-board-backend/routes"
	"github.com/sharath018/property-board-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auth.UserRole{},
		&auditlog.AuditLog{},
		&property.Property{},
		&property.PropertyDetail{},
		&property.AssignedProperty{},
		&board.Board{},
		&board.BoardProperty{},
		&ledger.SharedProperty{},
		&notification.InAppNotification{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed roles
	authRepo := auth.NewRepository(db)
	if err := authRepo.SeedRoles([]string{
		auth.RolePropertyAgent,
		auth.RoleFieldAgent,
		auth.RoleTenant,
		auth.RoleBuyer,
	}); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}

	// Start the board event consumer
	notificationRepo := notification.NewRepository(db)
	emailSender := notification.NewEmailSender(cfg)
	notificationSvc := notification.NewService(notificationRepo, authRepo, emailSender)
	consumer := notification.NewConsumer(cfg, notificationSvc)
	go consumer.Run(context.Background())
	defer consumer.Close()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
