package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/interface/api/rest/dto/laudo"
	"laudos-api/internal/interface/api/rest/middleware"
	"laudos-api/internal/interface/api/rest/validator"
)

type LaudoController struct {
	laudoService ports.LaudoService
	urls         ports.AttachmentURLs
	logger       *zap.Logger
}

// NewLaudoController adds attachment URLs to responses when urls is not nil.
func NewLaudoController(
	r *gin.Engine,
	laudoService ports.LaudoService,
	urls ports.AttachmentURLs,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
) *LaudoController {
	lc := &LaudoController{
		laudoService: laudoService,
		urls:         urls,
		logger:       logger,
	}

	g := r.Group("", authMW)
	g.GET(RouteLaudos, lc.GetLaudosHandler)
	g.POST(RouteLaudos, lc.CreateLaudoHandler)

	return lc
}

func (lc *LaudoController) GetLaudosHandler(c *gin.Context) {
	laudos, err := lc.laudoService.FindLaudos(c.Request.Context(), middleware.ClaimsFrom(c), c.Query("patientId"))
	if err != nil {
		respondError(c, lc.logger, "FindLaudos()", err)
		return
	}

	c.JSON(http.StatusOK, laudo.ToResponseLaudos(laudos, lc.urls))
}

func (lc *LaudoController) CreateLaudoHandler(c *gin.Context) {
	var req laudo.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, map[string]string{"body": "invalid json"})
		return
	}
	if errs := validator.Validate(req); errs != nil {
		respondInvalid(c, errs)
		return
	}

	in, err := laudo.ToDomainNew(req)
	if err != nil {
		respondInvalid(c, map[string]string{"examDate": err.Error()})
		return
	}

	l, err := lc.laudoService.CreateLaudo(c.Request.Context(), middleware.ClaimsFrom(c), in)
	if err != nil {
		respondError(c, lc.logger, "CreateLaudo()", err)
		return
	}

	c.JSON(http.StatusCreated, laudo.ToResponseLaudo(*l, lc.urls))
}
