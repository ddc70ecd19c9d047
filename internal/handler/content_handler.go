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

// ContentHandler handles HTTP requests for the content catalog.
type ContentHandler struct {
	service *application.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service *application.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// RegisterRoutes registers all content routes.
func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/providers/:id/content", authMW, h.Publish)
	r.GET("/providers/:id/content", h.ListByProvider)
	r.GET("/content/:id", h.GetContent)
}

// Publish handles POST /api/v1/providers/:id/content.
func (h *ContentHandler) Publish(c *gin.Context) {
	authority, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	var req application.PublishContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Publish(c.Request.Context(), providerID, authority, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// ListByProvider handles GET /api/v1/providers/:id/content.
func (h *ContentHandler) ListByProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	dtos, err := h.service.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dtos)
}

// GetContent handles GET /api/v1/content/:id.
func (h *ContentHandler) GetContent(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid content record ID")
		return
	}

	dto, err := h.service.GetContent(c.Request.Context(), recordID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
