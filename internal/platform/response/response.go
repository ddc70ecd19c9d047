package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorgate/service-subscription/internal/platform/domain"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type paginatedEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, data interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{Success: true, Data: data, Total: total, Page: page, Limit: limit})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: msg})
}

// Error maps a domain error to its HTTP status and writes it.
func Error(c *gin.Context, err error) {
	c.JSON(statusFor(err), envelope{Success: false, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateSubscription),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrInvalidStartTime):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAutoRenewalDisabled),
		errors.Is(err, domain.ErrSubscriptionStillActive),
		errors.Is(err, domain.ErrInactiveSubscription):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
