package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/creatorgate/service-subscription/internal/application"
	"github.com/creatorgate/service-subscription/internal/platform/auth"
	"github.com/creatorgate/service-subscription/internal/platform/middleware"
	"github.com/creatorgate/service-subscription/internal/platform/response"
)

// SubscriptionHandler handles HTTP requests for subscription ledger operations.
type SubscriptionHandler struct {
	service *application.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(service *application.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// RegisterRoutes registers all subscription routes.
func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	subs := r.Group("/subscriptions", authMW)
	{
		subs.POST("", h.Open)
		subs.GET("/:providerId", h.GetMySubscription)
		subs.POST("/:providerId/renew", h.Renew)
		subs.POST("/:providerId/auto-renewal/toggle", h.ToggleAutoRenewal)
	}
}

// Open handles POST /api/v1/subscriptions.
func (h *SubscriptionHandler) Open(c *gin.Context) {
	subscriberID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.OpenSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Open(c.Request.Context(), subscriberID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// GetMySubscription handles GET /api/v1/subscriptions/:providerId.
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	subscriberID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	dto, err := h.service.GetSubscription(c.Request.Context(), subscriberID, providerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// Renew handles POST /api/v1/subscriptions/:providerId/renew.
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	subscriberID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	dto, err := h.service.Renew(c.Request.Context(), subscriberID, providerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// ToggleAutoRenewal handles POST /api/v1/subscriptions/:providerId/auto-renewal/toggle.
func (h *SubscriptionHandler) ToggleAutoRenewal(c *gin.Context) {
	subscriberID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	dto, err := h.service.ToggleAutoRenewal(c.Request.Context(), subscriberID, providerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
