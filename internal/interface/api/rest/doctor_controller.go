package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	domain "laudos-api/internal/domain/doctor"
	"laudos-api/internal/interface/api/rest/dto/doctor"
	"laudos-api/internal/interface/api/rest/middleware"
	"laudos-api/internal/interface/api/rest/validator"
)

type DoctorController struct {
	doctorService ports.DoctorService
	logger        *zap.Logger
}

func NewDoctorController(
	r *gin.Engine,
	doctorService ports.DoctorService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
) *DoctorController {
	dc := &DoctorController{
		doctorService: doctorService,
		logger:        logger,
	}

	g := r.Group("", authMW)
	g.GET(RouteDoctors, dc.GetDoctorsHandler)
	g.POST(RouteDoctors, dc.CreateDoctorHandler)
	g.PATCH(RouteDoctor, dc.UpdateDoctorHandler)
	g.DELETE(RouteDoctor, dc.DeactivateDoctorHandler)
	g.PUT(RouteDoctor, dc.ReactivateDoctorHandler)

	return dc
}

// includeInactive reads the includeInactive query flag; anything unparsable is false.
func includeInactive(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.Query("includeInactive"))
	return v
}

func (dc *DoctorController) GetDoctorsHandler(c *gin.Context) {
	doctors, err := dc.doctorService.FindDoctors(
		c.Request.Context(),
		middleware.ClaimsFrom(c),
		domain.Filter{IncludeInactive: includeInactive(c)},
		c.Query("q"),
	)
	if err != nil {
		respondError(c, dc.logger, "FindDoctors()", err)
		return
	}

	c.JSON(http.StatusOK, doctor.ToResponseDoctors(doctors))
}

func (dc *DoctorController) CreateDoctorHandler(c *gin.Context) {
	var req doctor.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, map[string]string{"body": "invalid json"})
		return
	}
	if errs := validator.Validate(req); errs != nil {
		respondInvalid(c, errs)
		return
	}

	d, err := dc.doctorService.CreateDoctor(c.Request.Context(), middleware.ClaimsFrom(c), doctor.ToDomainInput(req))
	if err != nil {
		respondError(c, dc.logger, "CreateDoctor()", err)
		return
	}

	c.JSON(http.StatusCreated, doctor.MessageResponse{
		Message: "doctor created",
		Doctor:  doctor.ToResponseDoctor(*d),
	})
}

func (dc *DoctorController) UpdateDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	var req doctor.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, map[string]string{"body": "invalid json"})
		return
	}
	if errs := validator.Validate(req); errs != nil {
		respondInvalid(c, errs)
		return
	}

	d, err := dc.doctorService.UpdateDoctor(c.Request.Context(), middleware.ClaimsFrom(c), id, doctor.ToDomainPatch(req))
	if err != nil {
		respondError(c, dc.logger, "UpdateDoctor()", err)
		return
	}

	c.JSON(http.StatusOK, doctor.ToResponseDoctor(*d))
}

func (dc *DoctorController) DeactivateDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	d, err := dc.doctorService.DeactivateDoctor(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		respondError(c, dc.logger, "DeactivateDoctor()", err)
		return
	}

	c.JSON(http.StatusOK, doctor.MessageResponse{
		Message: "doctor deactivated",
		Doctor:  doctor.ToResponseDoctor(*d),
	})
}

func (dc *DoctorController) ReactivateDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	d, err := dc.doctorService.ReactivateDoctor(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		respondError(c, dc.logger, "ReactivateDoctor()", err)
		return
	}

	c.JSON(http.StatusOK, doctor.MessageResponse{
		Message: "doctor reactivated",
		Doctor:  doctor.ToResponseDoctor(*d),
	})
}
