package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/interface/api/rest/middleware"
)

// respondError writes err to the client. Anything outside the apperr
// taxonomy is logged under op and reported as INTERNAL.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	e, ok := apperr.As(err)
	if !ok {
		logger.Error(op+" error",
			zap.Error(err),
			zap.String("request_id", middleware.RequestIDFrom(c)),
		)
	}
	middleware.Abort(c, e, nil)
}

func respondInvalid(c *gin.Context, details map[string]string) {
	middleware.Abort(c, apperr.Validation("", "invalid request body"), details)
}
