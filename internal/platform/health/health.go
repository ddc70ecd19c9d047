package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves liveness and readiness probes.
type Handler struct {
	db      *gorm.DB
	service string
}

// NewHandler creates a health handler for the given service.
func NewHandler(db *gorm.DB, service string) *Handler {
	return &Handler{db: db, service: service}
}

// RegisterRoutes registers /health and /ready.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health handles the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.service})
}

// Ready handles the readiness probe; it fails when the database is unreachable.
func (h *Handler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": h.service})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "service": h.service})
}
