package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dinehub/dinehub-api/config"
	"github.com/dinehub/dinehub-api/controllers"
	"github.com/dinehub/dinehub-api/middleware"
	"github.com/dinehub/dinehub-api/models"
	"github.com/dinehub/dinehub-api/services"
	"github.com/dinehub/dinehub-api/ws"
)

func main() {
	// Basic logging
	log.Println("Starting DineHub API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetupLogger(cfg.LogLevel)

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.DiningTable{},
		&models.MenuItem{},
		&models.MenuItemAddon{},
		&models.Rider{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddon{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Start the realtime hub; with REDIS_ADDR set, broadcasts go through
	// the shared Redis bus so clients attached to other instances see them
	hub := ws.NewHub()
	go hub.Run()

	var notifier services.Notifier = hub
	if cfg.RedisAddr != "" {
		redisNotifier := services.NewRedisNotifier(cfg.RedisAddr, hub)
		go redisNotifier.Run(context.Background())
		notifier = redisNotifier
		log.Println("Realtime fan-out bridged through Redis at", cfg.RedisAddr)
	}
	controllers.SetNotifier(notifier)

	// Initialize Gin router
	router := gin.Default()

	// Enable CORS for the SPA frontends
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	authRequired := middleware.EnsureValidToken(cfg)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Ordering flow (customer app or point-of-sale)
		v1.POST("/orders",
			authRequired,
			middleware.RequireRole(models.RoleCustomer, models.RolePOS, models.RoleAdmin),
			controllers.CreateOrder,
		)

		// Dashboard / kitchen display
		v1.GET("/orders",
			authRequired,
			middleware.RequireRole(models.RoleAdmin, models.RoleKitchen),
			controllers.ListOrders,
		)
		v1.GET("/orders/:id",
			authRequired,
			middleware.RequireRole(models.RoleAdmin, models.RoleKitchen, models.RoleRider),
			controllers.GetOrder,
		)

		// Status transitions share one validator path for every actor role
		v1.PATCH("/orders/:id/status",
			authRequired,
			middleware.RequireRole(models.RoleAdmin, models.RoleKitchen, models.RoleRider),
			controllers.UpdateOrderStatus,
		)
		v1.PATCH("/orders/:id/rider",
			authRequired,
			middleware.RequireRole(models.RoleAdmin),
			controllers.AssignRider,
		)
		v1.GET("/riders",
			authRequired,
			middleware.RequireRole(models.RoleAdmin),
			controllers.ListRiders,
		)

		// Realtime channel (token accepted via query parameter)
		v1.GET("/ws/orders",
			authRequired,
			middleware.RequireRole(models.RoleAdmin, models.RoleKitchen, models.RoleRider),
			hub.HandleWebSocket,
		)
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "DineHub API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Database not connected",
		})
		return
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connection is healthy",
	})
}
