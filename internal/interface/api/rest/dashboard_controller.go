package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/application/services"
	"laudos-api/internal/interface/api/rest/dto/dashboard"
	"laudos-api/internal/interface/api/rest/middleware"
)

type DashboardController struct {
	dashboardService ports.DashboardService
	logger           *zap.Logger
}

func NewDashboardController(
	r *gin.Engine,
	dashboardService ports.DashboardService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
) *DashboardController {
	dc := &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}

	r.GET(RouteDashboard, authMW, dc.GetDashboardHandler)

	return dc
}

func (dc *DashboardController) GetDashboardHandler(c *gin.Context) {
	d, err := dc.dashboardService.Overview(c.Request.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		respondError(c, dc.logger, "Overview()", err)
		return
	}

	c.JSON(http.StatusOK, dashboard.ToResponse(*d, services.SectionUser))
}
