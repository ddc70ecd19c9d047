package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creatorgate/service-subscription/internal/application"
	"github.com/creatorgate/service-subscription/internal/platform/auth"
	"github.com/creatorgate/service-subscription/internal/platform/middleware"
	"github.com/creatorgate/service-subscription/internal/platform/response"
)

// AdminHandler handles admin HTTP requests for subscription and charge data.
type AdminHandler struct {
	subService    *application.SubscriptionService
	chargeService *application.ChargeService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(subService *application.SubscriptionService, chargeService *application.ChargeService) *AdminHandler {
	return &AdminHandler{
		subService:    subService,
		chargeService: chargeService,
	}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/subscriptions", h.ListSubscriptions)
		admin.GET("/charges", h.ListCharges)
		admin.GET("/stats/charges", h.ChargeStats)
	}
}

// ListSubscriptions handles GET /api/v1/admin/subscriptions.
func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	page, limit := pagination(c)

	subs, total, err := h.subService.ListAllSubscriptions(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, subs, total, page, limit)
}

// ListCharges handles GET /api/v1/admin/charges.
func (h *AdminHandler) ListCharges(c *gin.Context) {
	page, limit := pagination(c)

	charges, total, err := h.chargeService.ListCharges(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, charges, total, page, limit)
}

// ChargeStats handles GET /api/v1/admin/stats/charges.
func (h *AdminHandler) ChargeStats(c *gin.Context) {
	stats, err := h.chargeService.GetChargeStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
