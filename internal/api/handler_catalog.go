package api

import (
	"context"

	"storefront/internal/tracking"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

// productEvent handles the endpoints whose body is a single product.
func (h *EventHandler) productEvent(c *gin.Context, event string, op func(*tracking.Tracker, context.Context, models.Product) error) {
	p, ok := bind[models.Product](c)
	if !ok {
		return
	}
	h.emit(c, "track", event, func(ctx context.Context, tr *tracking.Tracker) error {
		return op(tr, ctx, p)
	})
}

// ProductViewed godoc
// @Summary      Track a product detail view
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      models.Product  true  "Viewed product"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/product-viewed [post]
func (h *EventHandler) ProductViewed(c *gin.Context) {
	h.productEvent(c, tracking.EventProductViewed, (*tracking.Tracker).TrackProductViewed)
}

// ProductListRequest is a listing page and the products it shows.
type ProductListRequest struct {
	ListName string           `json:"list_name"`
	Products []models.Product `json:"products"`
}

// ProductListViewed godoc
// @Summary      Track a product list view
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      ProductListRequest  true  "Product list"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/product-list-viewed [post]
func (h *EventHandler) ProductListViewed(c *gin.Context) {
	req, ok := bind[ProductListRequest](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventProductListViewed, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackProductListViewed(ctx, req.Products, req.ListName)
	})
}

// SearchRequest carries the raw search query.
type SearchRequest struct {
	Query string `json:"query"`
}

// ProductsSearched godoc
// @Summary      Track a product search
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      SearchRequest  true  "Search query"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/products-searched [post]
func (h *EventHandler) ProductsSearched(c *gin.Context) {
	req, ok := bind[SearchRequest](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventProductsSearched, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackProductsSearched(ctx, req.Query)
	})
}

// ProductAdded godoc
// @Summary      Track a product added to the cart
// @Description  The cart id is read from the cart_id cookie
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body      models.Product  true  "Added product"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/product-added [post]
func (h *EventHandler) ProductAdded(c *gin.Context) {
	h.productEvent(c, tracking.EventProductAdded, (*tracking.Tracker).TrackProductAdded)
}

// ProductRemoved godoc
// @Summary      Track a product removed from the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body      models.Product  true  "Removed product"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/product-removed [post]
func (h *EventHandler) ProductRemoved(c *gin.Context) {
	h.productEvent(c, tracking.EventProductRemoved, (*tracking.Tracker).TrackProductRemoved)
}

// CartRequest lists the cart's items and, for checkout, the displayed total.
type CartRequest struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// CartViewed godoc
// @Summary      Track a cart view
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body      CartRequest  true  "Cart contents"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/cart-viewed [post]
func (h *EventHandler) CartViewed(c *gin.Context) {
	req, ok := bind[CartRequest](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventCartViewed, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackCartViewed(ctx, req.Items)
	})
}

// CheckoutStarted godoc
// @Summary      Track the start of checkout
// @Description  Revenue is the total as given, not recomputed from items
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body      CartRequest  true  "Cart contents and total"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/checkout-started [post]
func (h *EventHandler) CheckoutStarted(c *gin.Context) {
	req, ok := bind[CartRequest](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventCheckoutStarted, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackCheckoutStarted(ctx, req.Items, req.Total)
	})
}

// OrderCompleted godoc
// @Summary      Track a completed order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      models.Order  true  "Placed order"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/order-completed [post]
func (h *EventHandler) OrderCompleted(c *gin.Context) {
	o, ok := bind[models.Order](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventOrderCompleted, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackOrderCompleted(ctx, o)
	})
}

// OrderCancelled godoc
// @Summary      Track a cancelled order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      models.Order  true  "Cancelled order"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/order-cancelled [post]
func (h *EventHandler) OrderCancelled(c *gin.Context) {
	o, ok := bind[models.Order](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventOrderCancelled, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackOrderCancelled(ctx, o)
	})
}

// ReviewRequest is a submitted product review.
type ReviewRequest struct {
	Product    models.Product `json:"product"`
	Rating     float64        `json:"rating"`
	ReviewText string         `json:"review_text"`
}

// ProductReviewed godoc
// @Summary      Track a product review
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      ReviewRequest  true  "Review"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/product-reviewed [post]
func (h *EventHandler) ProductReviewed(c *gin.Context) {
	req, ok := bind[ReviewRequest](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventProductReviewed, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackProductReviewed(ctx, req.Product, req.Rating, req.ReviewText)
	})
}

// WishlistAdded godoc
// @Summary      Track a product added to the wishlist
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        request  body      models.Product  true  "Product"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/wishlist-added [post]
func (h *EventHandler) WishlistAdded(c *gin.Context) {
	h.productEvent(c, tracking.EventWishlistProductAdded, (*tracking.Tracker).TrackWishlistProductAdded)
}

// WishlistRemoved godoc
// @Summary      Track a product removed from the wishlist
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        request  body      models.Product  true  "Product"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/wishlist-removed [post]
func (h *EventHandler) WishlistRemoved(c *gin.Context) {
	h.productEvent(c, tracking.EventWishlistProductRemoved, (*tracking.Tracker).TrackWishlistProductRemoved)
}

// PaymentInfoEntered godoc
// @Summary      Track payment details entered at checkout
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      models.PaymentInfo  true  "Payment method"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/payment-info-entered [post]
func (h *EventHandler) PaymentInfoEntered(c *gin.Context) {
	info, ok := bind[models.PaymentInfo](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventPaymentInfoEntered, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackPaymentInfoEntered(ctx, info)
	})
}

// PromotionViewed godoc
// @Summary      Track a promotion impression
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request  body      models.Promotion  true  "Promotion"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/promotion-viewed [post]
func (h *EventHandler) PromotionViewed(c *gin.Context) {
	p, ok := bind[models.Promotion](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventPromotionViewed, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackPromotionViewed(ctx, p)
	})
}

// PromotionClicked godoc
// @Summary      Track a promotion click
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request  body      models.Promotion  true  "Promotion"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/promotion-clicked [post]
func (h *EventHandler) PromotionClicked(c *gin.Context) {
	p, ok := bind[models.Promotion](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventPromotionClicked, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackPromotionClicked(ctx, p)
	})
}
