package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/interface/api/rest/dto/auth"
	"laudos-api/internal/interface/api/rest/middleware"
	"laudos-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
	limiter     ports.RateLimiter
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
	limiter ports.RateLimiter,
	authMW gin.HandlerFunc,
	rateMW gin.HandlerFunc,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
		limiter:     limiter,
	}

	r.POST(RouteLogin, rateMW, ac.LoginHandler)
	r.GET(RouteSession, authMW, ac.SessionHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, map[string]string{"body": "invalid json"})
		return
	}
	if errs := validator.Validate(req); errs != nil {
		respondInvalid(c, errs)
		return
	}

	s, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, ac.logger, "Login()", err)
		return
	}

	if ac.limiter != nil {
		if err = ac.limiter.Reset(c.Request.Context(), "login:"+c.ClientIP()); err != nil {
			ac.logger.Warn("rate limit reset failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, auth.ToLoginResponse(*s))
}

func (ac *AuthController) SessionHandler(c *gin.Context) {
	s, err := ac.authService.Current(c.Request.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		respondError(c, ac.logger, "Current()", err)
		return
	}

	c.JSON(http.StatusOK, auth.SessionResponse{User: auth.ToResponseUser(*s)})
}
