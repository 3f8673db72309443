package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laudos-api/internal/application/apperr"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    apperr.Code       `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

func StatusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Abort stops the chain with e. details may be nil.
func Abort(c *gin.Context, e *apperr.Error, details map[string]string) {
	if details == nil && e.Field != "" {
		details = map[string]string{e.Field: e.Message}
	}
	c.AbortWithStatusJSON(StatusOf(e.Kind), ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: details,
	})
}
