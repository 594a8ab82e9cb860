// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/config"
	"github.com/couturehub/couture-backend/internal/handlers"
	"github.com/couturehub/couture-backend/internal/middleware"
	"github.com/couturehub/couture-backend/internal/services"
	"github.com/couturehub/couture-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	workshopService := services.NewWorkshopService(db)
	catalogService := services.NewCatalogService(db)
	measurementService := services.NewMeasurementService(db)
	orderService := services.NewOrderService(db, notificationService)
	inventoryService := services.NewInventoryService(db)
	paymentService := services.NewPaymentService(db, cfg)
	designService := services.NewDesignService(cfg)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	workshopHandler := handlers.NewWorkshopHandler(workshopService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	measurementHandler := handlers.NewMeasurementHandler(measurementService)
	orderHandler := handlers.NewOrderHandler(orderService)
	materialHandler := handlers.NewMaterialHandler(inventoryService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	designHandler := handlers.NewDesignHandler(designService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	adminHandler := handlers.NewAdminHandler(adminService, userService, workshopService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/profile", userHandler.UpdateProfile)
		}

		// Workshop routes
		workshops := v1.Group("/workshops")
		{
			workshops.GET("", middleware.OptionalAuth(), workshopHandler.GetWorkshops)
			workshops.GET("/:id", middleware.OptionalAuth(), workshopHandler.GetWorkshop)
			workshops.GET("/:id/reviews", workshopHandler.GetReviews)

			// Authenticated routes
			protected := workshops.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/:id", workshopHandler.UpdateWorkshop)
				protected.POST("/:id/reviews", workshopHandler.AddReview)
				protected.POST("/:id/images", middleware.UploadRateLimit(), workshopHandler.AddImage)
			}
		}

		// Clothing model catalog routes
		catalog := v1.Group("/models")
		{
			catalog.GET("", middleware.OptionalAuth(), catalogHandler.GetModels)
			catalog.GET("/featured", catalogHandler.GetFeaturedModels)
			catalog.GET("/:id", middleware.OptionalAuth(), catalogHandler.GetModel)

			// Admin-managed catalog
			protected := catalog.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", catalogHandler.CreateModel)
				protected.PUT("/:id", catalogHandler.UpdateModel)
				protected.DELETE("/:id", catalogHandler.DeleteModel)
				protected.POST("/:id/images", middleware.UploadRateLimit(), catalogHandler.AddImage)
			}
		}

		// Measurement routes
		measurements := v1.Group("/measurements")
		measurements.Use(middleware.AuthRequired())
		{
			measurements.GET("", measurementHandler.GetMeasurements)
			measurements.POST("", measurementHandler.CreateMeasurement)
			measurements.GET("/:id", measurementHandler.GetMeasurement)
			measurements.PUT("/:id", measurementHandler.UpdateMeasurement)
			measurements.DELETE("/:id", measurementHandler.DeleteMeasurement)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/status", orderHandler.UpdateStatus)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
			orders.GET("/:id/status-updates", orderHandler.GetStatusUpdates)
		}

		// Material and inventory routes
		materials := v1.Group("/materials")
		{
			materials.GET("", middleware.OptionalAuth(), materialHandler.GetMaterials)
			materials.GET("/low-stock", middleware.AuthRequired(), middleware.AdminRequired(), materialHandler.GetLowStockMaterials)
			materials.GET("/:id", middleware.OptionalAuth(), materialHandler.GetMaterial)

			// Stock changes go through the movement ledger
			protected := materials.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", materialHandler.CreateMaterial)
				protected.PUT("/:id", materialHandler.UpdateMaterial)
				protected.DELETE("/:id", materialHandler.DeleteMaterial)
				protected.POST("/:id/add-stock", materialHandler.AddStock)
				protected.POST("/:id/remove-stock", materialHandler.RemoveStock)
				protected.POST("/:id/movements", materialHandler.ApplyMovement)
				protected.POST("/:id/images", middleware.UploadRateLimit(), materialHandler.AddImage)
			}
		}

		// Movement ledger listing (non-admins get an empty page)
		v1.GET("/stock-movements", middleware.AuthRequired(), materialHandler.GetStockMovements)

		// Supplier routes
		suppliers := v1.Group("/suppliers")
		suppliers.Use(middleware.AuthRequired())
		{
			suppliers.GET("", materialHandler.GetSuppliers)
			suppliers.POST("", middleware.AdminRequired(), materialHandler.CreateSupplier)
		}

		// Material category routes
		categories := v1.Group("/material-categories")
		{
			categories.GET("", materialHandler.GetCategories)
			categories.POST("", middleware.AuthRequired(), middleware.AdminRequired(), materialHandler.CreateCategory)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
			payments.GET("/history", paymentHandler.GetPaymentHistory)
			payments.POST("/refund", middleware.AdminRequired(), paymentHandler.ProcessRefund)
			payments.POST("/offline", middleware.AdminRequired(), paymentHandler.RecordOfflinePayment)
		}

		// Design assistant routes
		design := v1.Group("/design")
		design.Use(middleware.AuthRequired())
		{
			design.POST("/generate-models", designHandler.GenerateModels)
			design.POST("/analyze-fabric", designHandler.AnalyzeFabric)
		}

		// Upload routes
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthRequired(), middleware.UploadRateLimit())
		{
			uploads.POST("/images", uploadHandler.UploadFiles)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboard)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
			}

			adminWorkshops := admin.Group("/workshops")
			{
				adminWorkshops.PUT("/:id/verify", adminHandler.VerifyWorkshop)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
