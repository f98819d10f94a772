// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/config"
	"github.com/luxshop/backend/internal/handlers"
	"github.com/luxshop/backend/internal/middleware"
	"github.com/luxshop/backend/internal/services"
	"github.com/luxshop/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, cfg, notificationService)
	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db, cfg, notificationService)
	userService := services.NewUserService(db, notificationService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	profileHandler := handlers.NewProfileHandler(userService, orderService, notificationService)
	adminHandler := handlers.NewAdminHandler(adminService, orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

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
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Public storefront catalog
		catalog := v1.Group("/catalog")
		catalog.Use(middleware.OptionalAuth())
		{
			catalog.GET("/products", catalogHandler.ListProducts)
			catalog.GET("/products/:id", catalogHandler.GetProduct)
			catalog.GET("/categories", catalogHandler.ListCategories)
			catalog.GET("/stats", catalogHandler.Stats)
		}

		// Purchases
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Account self-service
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.GET("/orders", profileHandler.ListOrders)
			profile.GET("/notifications", profileHandler.ListNotifications)
			profile.PUT("/notifications/:id/read", profileHandler.MarkNotificationRead)
		}

		// Admin panel
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			admin.GET("/orders", adminHandler.ListOrders)
			admin.PUT("/orders/:id/approve", adminHandler.ApproveOrder)
			admin.PUT("/orders/:id/reject", adminHandler.RejectOrder)
			admin.PUT("/orders/:id/deliver", adminHandler.DeliverOrder)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.GET("/logs", adminHandler.ListLogs)
		}
	}

	return r
}
