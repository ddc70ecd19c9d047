package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorgate/service-subscription/internal/platform/auth"
)

const (
	ctxKeyUserID    = "auth_user_id"
	ctxKeyUserRole  = "auth_user_role"
	headerRequestID = "X-Request-ID"
)

// AuthMiddleware validates the Bearer token and stores the caller identity in the context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := jwtManager.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller has the given role.
func RequireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := c.Get(ctxKeyUserRole)
		if !ok || got.(auth.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated caller identity set by AuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// LoggerMiddleware logs each request with zap after it completes.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(headerRequestID)),
		)
	}
}

// RecoveryMiddleware converts panics into 500 responses and logs them.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}

// RequestIDMiddleware assigns a request id if the client did not send one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Next()
	}
}

// CORSMiddleware applies the service CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", headerRequestID)
	return cors.New(cfg)
}

// SecurityHeadersMiddleware sets common security response headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
