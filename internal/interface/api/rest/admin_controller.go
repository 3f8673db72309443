package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/interface/api/rest/middleware"
)

const backupContentType = "application/x-sqlite3"

type AdminController struct {
	backupService ports.BackupService
	logger        *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	backupService ports.BackupService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
) *AdminController {
	ac := &AdminController{
		backupService: backupService,
		logger:        logger,
	}

	r.GET(RouteDownloadDB, authMW, ac.DownloadDBHandler)

	return ac
}

func (ac *AdminController) DownloadDBHandler(c *gin.Context) {
	b, err := ac.backupService.OpenBackup(c.Request.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		respondError(c, ac.logger, "OpenBackup()", err)
		return
	}
	defer b.Cleanup()

	c.Header("Content-Type", backupContentType)
	c.FileAttachment(b.Path, b.Filename)
}
