package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
)

const CtxClaims = "claims"

// AuthMiddleware authenticates the Bearer token and stores its claims.
// revoker may be nil, in which case sessions stay valid until they expire.
func AuthMiddleware(tokens ports.Tokens, revoker ports.Revoker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			Abort(c, apperr.ErrUnauthenticated, nil)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || tokenStr == "" {
			Abort(c, apperr.ErrUnauthenticated, nil)
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			Abort(c, apperr.ErrUnauthenticated, nil)
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims)
			if err != nil {
				// the deny-list is best effort; an outage must not lock everyone out
				logger.Warn("revocation check failed", zap.Error(err), zap.String("user_id", claims.UserID))
			}
			if revoked {
				Abort(c, apperr.ErrSessionRevoked, nil)
				return
			}
		}

		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthMiddleware.
func ClaimsFrom(c *gin.Context) access.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return access.Claims{}
	}
	claims, _ := v.(access.Claims)
	return claims
}
