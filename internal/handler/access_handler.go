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

// AccessHandler handles HTTP requests for content access checks.
type AccessHandler struct {
	service *application.AccessService
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(service *application.AccessService) *AccessHandler {
	return &AccessHandler{service: service}
}

// RegisterRoutes registers the access gate route.
func (h *AccessHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/content/:id/access", middleware.AuthMiddleware(jwtManager), h.CheckAccess)
}

// CheckAccess handles GET /api/v1/content/:id/access.
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid content record ID")
		return
	}

	dto, err := h.service.CheckAccess(c.Request.Context(), recordID, callerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
