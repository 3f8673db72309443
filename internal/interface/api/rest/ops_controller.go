package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
)

const healthTimeout = 2 * time.Second

type OpsController struct {
	db     ports.Pinger
	logger *zap.Logger
}

func NewOpsController(r *gin.Engine, db ports.Pinger, gatherer prometheus.Gatherer, logger *zap.Logger) *OpsController {
	oc := &OpsController{
		db:     db,
		logger: logger,
	}

	r.GET(RouteHealth, oc.HealthHandler)
	r.GET(RouteMetrics, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return oc
}

func (oc *OpsController) HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := oc.db.Ping(ctx); err != nil {
		oc.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
