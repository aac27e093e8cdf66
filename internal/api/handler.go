package api

import (
	"net/http"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	authService      *service.AuthService
	productService   *service.ProductService
	orderService     *service.OrderService
	reviewService    *service.ReviewService
	vendorService    *service.VendorService
	analyticsService *service.AnalyticsService
	uploadDir        string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	authService *service.AuthService,
	productService *service.ProductService,
	orderService *service.OrderService,
	reviewService *service.ReviewService,
	vendorService *service.VendorService,
	analyticsService *service.AnalyticsService,
	uploadDir string,
) *Handler {
	return &Handler{
		authService:      authService,
		productService:   productService,
		orderService:     orderService,
		reviewService:    reviewService,
		vendorService:    vendorService,
		analyticsService: analyticsService,
		uploadDir:        uploadDir,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/uploads", h.uploadDir)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.GET("/me", h.authRequired(), h.me)
		}

		products := v1.Group("/products")
		{
			products.GET("", h.listProducts)
			products.GET("/categories", h.listCategories)
			products.GET("/:id", h.getProduct)
			products.GET("/:id/reviews", h.listProductReviews)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", h.listVendors)
			vendors.GET("/:id", h.getVendor)
			vendors.GET("/:id/reviews", h.listVendorPublicReviews)
		}

		orders := v1.Group("/orders", h.authRequired())
		{
			orders.POST("", requireRole(models.RoleCustomer), h.createOrder)
			orders.GET("", requireRole(models.RoleCustomer), h.listMyOrders)
			orders.GET("/:id", h.getOrder)
			orders.PUT("/:id/cancel", requireRole(models.RoleCustomer), h.cancelOrder)
		}

		reviews := v1.Group("/reviews", h.authRequired(), requireRole(models.RoleCustomer))
		{
			reviews.POST("", h.createReview)
			reviews.PUT("/:id", h.updateReview)
			reviews.DELETE("/:id", h.deleteReview)
			reviews.POST("/:id/images", h.uploadReviewImages)
		}

		vendor := v1.Group("/vendor", h.authRequired(), requireRole(models.RoleVendor))
		{
			vendor.GET("/profile", h.vendorProfile)
			vendor.PUT("/profile", h.updateVendorProfile)
			vendor.POST("/profile/media", h.uploadStoreMedia)
			vendor.GET("/dashboard", h.vendorDashboard)
			vendor.GET("/analytics", h.vendorAnalytics)

			vendor.GET("/products", h.listVendorProducts)
			vendor.POST("/products", h.createProduct)
			vendor.GET("/products/low-stock", h.listLowStock)
			vendor.PUT("/products/:id", h.updateProduct)
			vendor.DELETE("/products/:id", h.deleteProduct)
			vendor.POST("/products/:id/images", h.uploadProductImages)

			vendor.GET("/orders", h.listVendorOrders)
			vendor.PUT("/orders/:id/status", h.updateOrderStatus)

			vendor.GET("/reviews", h.listVendorReviews)
			vendor.POST("/reviews/:id/respond", h.respondToReview)
		}

		admin := v1.Group("/admin", h.authRequired(), requireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", h.adminDashboard)
			admin.GET("/analytics", h.adminAnalytics)

			admin.GET("/vendors", h.adminListVendors)
			admin.GET("/vendors/pending", h.adminPendingVendors)
			admin.PUT("/vendors/:id/approve", h.approveVendor)
			admin.PUT("/vendors/:id/reject", h.rejectVendor)

			admin.GET("/orders", h.adminListOrders)

			admin.GET("/reviews", h.adminListReviews)
			admin.GET("/reviews/pending", h.adminPendingReviews)
			admin.PUT("/reviews/:id/moderate", h.moderateReview)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}
