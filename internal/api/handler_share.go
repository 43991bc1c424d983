package api

import (
	"context"
	"net/http"

	"storefront/internal/storefront"
	"storefront/internal/tracking"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

// ShareRequest is a product and, optionally, the channel it was shared on.
type ShareRequest struct {
	Product models.Product `json:"product"`
	Channel string         `json:"channel"`
}

// ShareMessageResponse carries the text behind the share buttons.
type ShareMessageResponse struct {
	Message  string   `json:"message"`
	Channels []string `json:"channels"`
}

// ShareMessage godoc
// @Summary      Build a share message
// @Description  Returns the share text for a product as seen from the request origin
// @Tags         share
// @Accept       json
// @Produce      json
// @Param        request  body      ShareRequest  true  "Product to share"
// @Success      200      {object}  ShareMessageResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /share-message [post]
func (h *EventHandler) ShareMessage(c *gin.Context) {
	req, ok := bind[ShareRequest](c)
	if !ok {
		return
	}
	share := storefront.NewSocialShare(h.Tracker, h.StoreName)
	c.JSON(http.StatusOK, ShareMessageResponse{
		Message:  share.Message(req.Product, requestLocation(c.Request)),
		Channels: storefront.Channels,
	})
}

// ProductShared godoc
// @Summary      Track a product share
// @Tags         share
// @Accept       json
// @Produce      json
// @Param        request  body      ShareRequest  true  "Shared product and channel"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/product-shared [post]
func (h *EventHandler) ProductShared(c *gin.Context) {
	req, ok := bind[ShareRequest](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventProductShared, func(ctx context.Context, tr *tracking.Tracker) error {
		return storefront.NewSocialShare(tr, h.StoreName).Share(ctx, req.Product, req.Channel)
	})
}
