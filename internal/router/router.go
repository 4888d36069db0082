// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/threadcart/threadcart-backend/internal/config"
	"github.com/threadcart/threadcart-backend/internal/handlers"
	"github.com/threadcart/threadcart-backend/internal/middleware"
	"github.com/threadcart/threadcart-backend/internal/services"
	"github.com/threadcart/threadcart-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	catalogService := services.NewCatalogService(db)
	categoryService := services.NewCategoryService(db)
	authService := services.NewAuthService(db, cfg)
	uploadService := services.NewUploadService(db, storageService)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, cfg)
	shippingService := services.NewShippingService(db, cfg)
	reviewService := services.NewReviewService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	authHandler := handlers.NewAuthHandler(authService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	shippingHandler := handlers.NewShippingHandler(shippingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

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
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product catalog routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/overview", middleware.AuthRequired(), middleware.AdminRequired(), productHandler.GetOverview)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", middleware.OptionalAuth(), reviewHandler.GetReviews)
			products.POST("/:id/reviews", middleware.AuthRequired(), reviewHandler.CreateReview)

			// Admin catalog management
			admin := products.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.POST("", productHandler.CreateProduct)
				admin.POST("/color", productHandler.AddColor)
				admin.POST("/sizes", productHandler.AddSizes)
				admin.PATCH("/color/:id", productHandler.UpdateColor)
				admin.PATCH("/stock", productHandler.UpdateStock)
				admin.PATCH("/:id", productHandler.UpdateProduct)
				admin.PATCH("/:id/status", productHandler.UpdateStatus)
				admin.DELETE("/asset/:id", productHandler.DeleteAsset)
				admin.DELETE("/color/:id", productHandler.DeleteColor)
				admin.DELETE("/variant/:id", productHandler.DeleteVariant)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", middleware.AuthRequired(), middleware.AdminRequired(), categoryHandler.CreateCategory)
		}

		// Upload routes
		uploads := v1.Group("/upload")
		uploads.Use(middleware.AuthRequired(), middleware.UploadRateLimit())
		{
			uploads.POST("/single", middleware.AdminRequired(), uploadHandler.UploadSingle)
			uploads.POST("/multiple", middleware.AdminRequired(), uploadHandler.UploadMultiple)
			uploads.GET("/history", middleware.AdminRequired(), uploadHandler.GetHistory)
			uploads.GET("/url/:id", middleware.AdminRequired(), uploadHandler.GetDownloadURL)
			uploads.POST("/profile", uploadHandler.SetProfileImage)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetUserOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
		}

		// Shipping routes (admin only)
		shipping := v1.Group("/shipping")
		shipping.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			shipping.POST("/orders", shippingHandler.CreateShipment)
			shipping.POST("/orders/cancel", shippingHandler.CancelShipment)
		}
	}

	return r
}
