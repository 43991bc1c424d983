package api

import (
	"net/http"
	"testing"

	"storefront/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter_RoutesExist(t *testing.T) {
	router := NewRouter(NewEventHandler(tracking.New(), "", nil, nil), http.NotFoundHandler())

	expected := []string{
		"GET /health",
		"GET /metrics",
		"GET /swagger/*any",
		"POST /identify",
		"POST /page",
		"POST /share-message",
		"POST /events/signup",
		"POST /events/login",
		"POST /events/logout",
		"POST /events/product-viewed",
		"POST /events/product-list-viewed",
		"POST /events/products-searched",
		"POST /events/product-added",
		"POST /events/product-removed",
		"POST /events/cart-viewed",
		"POST /events/checkout-started",
		"POST /events/order-completed",
		"POST /events/order-cancelled",
		"POST /events/product-shared",
		"POST /events/product-reviewed",
		"POST /events/wishlist-added",
		"POST /events/wishlist-removed",
		"POST /events/payment-info-entered",
		"POST /events/promotion-viewed",
		"POST /events/promotion-clicked",
	}

	found := make(map[string]bool)
	for _, r := range router.Routes() {
		found[r.Method+" "+r.Path] = true
	}

	for _, key := range expected {
		assert.True(t, found[key], "missing route %s", key)
	}
}

func TestNewRouter_WithoutMetricsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(NewEventHandler(tracking.New(), "", nil, nil), nil)

	for _, r := range router.Routes() {
		assert.NotEqual(t, "/metrics", r.Path)
	}
}
