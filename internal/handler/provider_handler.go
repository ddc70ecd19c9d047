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

// ProviderHandler handles HTTP requests for provider registry operations.
type ProviderHandler struct {
	service *application.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(service *application.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// RegisterRoutes registers all provider routes.
func (h *ProviderHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	providers := r.Group("/providers")
	{
		providers.POST("", authMW, h.Register)
		providers.GET("/:id", h.GetProvider)
	}
}

// Register handles POST /api/v1/providers.
func (h *ProviderHandler) Register(c *gin.Context) {
	authority, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Register(c.Request.Context(), authority, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// GetProvider handles GET /api/v1/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	dto, err := h.service.GetProvider(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
