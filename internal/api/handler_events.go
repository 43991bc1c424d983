package api

import (
	"context"
	"net/http"

	"storefront/internal/tracking"
	"storefront/pkg/middleware"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DropRecorder counts calls made while no sink is attached.
type DropRecorder interface {
	RecordDropped(call, event string)
}

// EventHandler turns storefront HTTP calls into tracker operations.
type EventHandler struct {
	Tracker   *tracking.Tracker
	StoreName string
	drops     DropRecorder
	logger    *zap.Logger
}

// NewEventHandler creates a new EventHandler. drops may be nil.
func NewEventHandler(tr *tracking.Tracker, storeName string, drops DropRecorder, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{Tracker: tr, StoreName: storeName, drops: drops, logger: logger}
}

// AcceptedResponse is returned by every tracking endpoint.
type AcceptedResponse struct {
	Status string `json:"status" example:"accepted"`
}

// ErrorResponse is returned for malformed request bodies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// bind decodes the JSON body into v, answering 400 on failure.
func bind[T any](c *gin.Context) (T, bool) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return v, false
	}
	return v, true
}

// emit runs send against a tracker bound to the request's environment.
// Tracking never fails the request: sink errors are logged and the call is
// still accepted.
func (h *EventHandler) emit(c *gin.Context, call, event string, send func(ctx context.Context, tr *tracking.Tracker) error) {
	tr := h.Tracker.With(requestEnv(c.Request))
	if !tr.Ready() && h.drops != nil {
		h.drops.RecordDropped(call, event)
	}

	if err := send(c.Request.Context(), tr); err != nil {
		h.logger.Warn("analytics call failed",
			zap.String("call", call),
			zap.String("event", event),
			zap.String("correlation_id", middleware.GetCorrelationID(c)),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusAccepted, AcceptedResponse{Status: "accepted"})
}

// Identify godoc
// @Summary      Identify a shopper
// @Description  Sends an identify call with the user's traits
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.User  true  "Signed-in user"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /identify [post]
func (h *EventHandler) Identify(c *gin.Context) {
	u, ok := bind[models.User](c)
	if !ok {
		return
	}
	h.emit(c, "identify", "", func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.IdentifyUser(ctx, u)
	})
}

// PageRequest names a page view and its extra properties.
type PageRequest struct {
	Name       string              `json:"name"`
	Properties tracking.Properties `json:"properties"`
}

// Page godoc
// @Summary      Track a page view
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        request  body      PageRequest  true  "Page view"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /page [post]
func (h *EventHandler) Page(c *gin.Context) {
	req, ok := bind[PageRequest](c)
	if !ok {
		return
	}
	h.emit(c, "page", "", func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackPageView(ctx, req.Name, req.Properties)
	})
}

// Signup godoc
// @Summary      Track a signup
// @Description  Sends "User Signed Up"; the method is the user's provider or "email"
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.User  true  "New user"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/signup [post]
func (h *EventHandler) Signup(c *gin.Context) {
	u, ok := bind[models.User](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventUserSignedUp, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackSignup(ctx, u)
	})
}

// Login godoc
// @Summary      Track a login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.User  true  "Signed-in user"
// @Success      202      {object}  AcceptedResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /events/login [post]
func (h *EventHandler) Login(c *gin.Context) {
	u, ok := bind[models.User](c)
	if !ok {
		return
	}
	h.emit(c, "track", tracking.EventUserLoggedIn, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackLogin(ctx, u)
	})
}

// Logout godoc
// @Summary      Track a logout
// @Tags         users
// @Produce      json
// @Success      202  {object}  AcceptedResponse
// @Router       /events/logout [post]
func (h *EventHandler) Logout(c *gin.Context) {
	h.emit(c, "track", tracking.EventUserLoggedOut, func(ctx context.Context, tr *tracking.Tracker) error {
		return tr.TrackLogout(ctx)
	})
}
