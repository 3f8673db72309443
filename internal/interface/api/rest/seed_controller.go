package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/application/services"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/interface/api/rest/dto/doctor"
)

type (
	SeedCredentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Type     string `json:"type"`
	}

	SeedResponse struct {
		Message     string          `json:"message"`
		Credentials SeedCredentials `json:"credentials"`
		Doctor      doctor.Doctor   `json:"doctor"`
	}
)

type SeedController struct {
	seedService ports.SeedService
	logger      *zap.Logger
}

// NewSeedController must not be wired in production.
func NewSeedController(r *gin.Engine, seedService ports.SeedService, logger *zap.Logger) *SeedController {
	sc := &SeedController{
		seedService: seedService,
		logger:      logger,
	}

	r.GET(RouteSeed, sc.SeedHandler)

	return sc
}

func (sc *SeedController) SeedHandler(c *gin.Context) {
	created, d, err := sc.seedService.SeedAdmin(c.Request.Context())
	if err != nil {
		respondError(c, sc.logger, "SeedAdmin()", err)
		return
	}

	msg := "seed admin created"
	if !created {
		msg = "seed admin already exists"
	}

	c.JSON(http.StatusOK, SeedResponse{
		Message: msg,
		Credentials: SeedCredentials{
			Email:    services.SeedAdminEmail,
			Password: services.SeedAdminPassword,
			Type:     string(user.RoleDoctorAdmin),
		},
		Doctor: doctor.ToResponseDoctor(*d),
	})
}
