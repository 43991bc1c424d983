package api

import (
	"net/http"

	"storefront/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates and configures the Gin router. metricsHandler may be nil.
func NewRouter(h *EventHandler, metricsHandler http.Handler) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(middleware.CorrelationID())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sink_ready": h.Tracker.Ready()})
	})

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/identify", h.Identify)
	r.POST("/page", h.Page)
	r.POST("/share-message", h.ShareMessage)

	events := r.Group("/events")
	events.POST("/signup", h.Signup)
	events.POST("/login", h.Login)
	events.POST("/logout", h.Logout)
	events.POST("/product-viewed", h.ProductViewed)
	events.POST("/product-list-viewed", h.ProductListViewed)
	events.POST("/products-searched", h.ProductsSearched)
	events.POST("/product-added", h.ProductAdded)
	events.POST("/product-removed", h.ProductRemoved)
	events.POST("/cart-viewed", h.CartViewed)
	events.POST("/checkout-started", h.CheckoutStarted)
	events.POST("/order-completed", h.OrderCompleted)
	events.POST("/order-cancelled", h.OrderCancelled)
	events.POST("/product-shared", h.ProductShared)
	events.POST("/product-reviewed", h.ProductReviewed)
	events.POST("/wishlist-added", h.WishlistAdded)
	events.POST("/wishlist-removed", h.WishlistRemoved)
	events.POST("/payment-info-entered", h.PaymentInfoEntered)
	events.POST("/promotion-viewed", h.PromotionViewed)
	events.POST("/promotion-clicked", h.PromotionClicked)

	return r
}
