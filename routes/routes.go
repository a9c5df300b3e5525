package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/property-board-backend/config"
	"github.com/sharath018/property-board-backend/database"
	"github.com/sharath018/property-board-backend/internal/auditlog"
	"github.com/sharath018/property-board-backend/internal/auth"
	"github.com/sharath018/property-board-backend/internal/board"
	"github.com/sharath018/property-board-backend/internal/ledger"
	"github.com/sharath018/property-board-backend/internal/media"
	"github.com/sharath018/property-board-backend/internal/notification"
	"github.com/sharath018/property-board-backend/internal/property"
	"github.com/sharath018/property-board-backend/internal/reports"
	"github.com/sharath018/property-board-backend/middleware"
)

// Setup wires every module's routes onto the engine.
func Setup(r *gin.Engine, cfg *config.Config) {
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// Agents enumerate users when picking a board target or a field
	// agent for an assignment.
	protected.GET("/users",
		middleware.RBACMiddleware(auth.RolePropertyAgent, auth.RoleFieldAgent),
		authHandler.ListUsers)

	// ========== Properties ==========
	propertyRepo := property.NewRepository(database.DB)
	propertySvc := property.NewService(propertyRepo, auditSvc)
	propertyHandler := property.NewHandler(propertySvc)

	propertyRoutes := protected.Group("/properties")
	{
		propertyRoutes.GET("", propertyHandler.List)
		propertyRoutes.GET("/:id", propertyHandler.GetByID)

		agentRoutes := propertyRoutes.Group("")
		agentRoutes.Use(middleware.RBACMiddleware(auth.RolePropertyAgent))
		{
			agentRoutes.POST("", propertyHandler.Submit)
			agentRoutes.POST("/:id/assign", propertyHandler.Assign)
			agentRoutes.PATCH("/:id/close", propertyHandler.Close)
		}

		fieldRoutes := propertyRoutes.Group("")
		fieldRoutes.Use(middleware.RBACMiddleware(auth.RoleFieldAgent))
		{
			fieldRoutes.POST("/verify", propertyHandler.Verify)
			fieldRoutes.GET("/assignments/pending", propertyHandler.PendingAssignments)
			fieldRoutes.GET("/dashboard", propertyHandler.Dashboard)
		}
	}

	// ========== Boards ==========
	ledgerRepo := ledger.NewRepository(database.DB)
	boardRepo := board.NewRepository(database.DB)
	eventWriter := board.NewBoardEventWriter(cfg)
	imageStore, err := media.NewDiskStore(cfg.MediaRoot)
	if err != nil {
		log.Fatalf("❌ Failed to init media store: %v", err)
	}
	boardSvc := board.NewService(boardRepo, ledgerRepo, auditSvc, eventWriter)
	boardHandler := board.NewHandler(boardSvc, imageStore)

	boardRoutes := protected.Group("/boards")
	{
		boardRoutes.GET("/:id", boardHandler.GetByID)
		boardRoutes.GET("/:id/images", boardHandler.ListImages)

		agentRoutes := boardRoutes.Group("")
		agentRoutes.Use(middleware.RBACMiddleware(auth.RolePropertyAgent))
		{
			agentRoutes.POST("", boardHandler.Create)
			agentRoutes.GET("", boardHandler.ListMine)
			agentRoutes.POST("/:id/properties/:propertyId", boardHandler.AddProperty)
			agentRoutes.POST("/:id/finalize", boardHandler.Finalize)
			agentRoutes.POST("/:id/share", boardHandler.Share)
			agentRoutes.POST("/:id/images/copy", boardHandler.CopyImages)
		}

		targetRoutes := boardRoutes.Group("")
		targetRoutes.Use(middleware.RBACMiddleware(auth.RoleTenant, auth.RoleBuyer))
		{
			targetRoutes.POST("/:id/properties/:propertyId/view", boardHandler.RecordView)
			targetRoutes.POST("/:id/properties/:propertyId/shortlist", boardHandler.RecordShortlist)
		}
	}

	// Tenant/buyer shortlist listing
	protected.GET("/shortlisted",
		middleware.RBACMiddleware(auth.RoleTenant, auth.RoleBuyer),
		boardHandler.Shortlisted)

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(database.DB)
	emailSender := notification.NewEmailSender(cfg)
	notificationSvc := notification.NewService(notificationRepo, authRepo, emailSender)
	notificationHandler := notification.NewHandler(notificationSvc)

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.ListInApp)
		notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
	}

	// ========== Audit Logs (Property Agent Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(auth.RolePropertyAgent))
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
	}

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, reports.NewReportExporter())
	reportsHandler := reports.NewHandler(reportsSvc)

	reportsRoutes := protected.Group("/reports")
	reportsRoutes.Use(middleware.RBACMiddleware(auth.RolePropertyAgent, auth.RoleFieldAgent))
	{
		reportsRoutes.GET("/:type", reportsHandler.ExportReport)
	}
}
