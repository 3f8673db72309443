package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/interface/api/rest/dto/patient"
	"laudos-api/internal/interface/api/rest/middleware"
	"laudos-api/internal/interface/api/rest/validator"
)

type PatientController struct {
	patientService ports.PatientService
	logger         *zap.Logger
}

func NewPatientController(
	r *gin.Engine,
	patientService ports.PatientService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
) *PatientController {
	pc := &PatientController{
		patientService: patientService,
		logger:         logger,
	}

	g := r.Group("", authMW)
	g.GET(RoutePatients, pc.GetPatientsHandler)
	g.POST(RoutePatients, pc.CreatePatientHandler)
	g.GET(RoutePatient, pc.GetPatientHandler)
	g.PATCH(RoutePatient, pc.UpdatePatientHandler)
	g.DELETE(RoutePatient, pc.DeactivatePatientHandler)
	g.PUT(RoutePatient, pc.ReactivatePatientHandler)

	return pc
}

func (pc *PatientController) GetPatientsHandler(c *gin.Context) {
	patients, err := pc.patientService.FindPatients(
		c.Request.Context(),
		middleware.ClaimsFrom(c),
		includeInactive(c),
		c.Query("q"),
	)
	if err != nil {
		respondError(c, pc.logger, "FindPatients()", err)
		return
	}

	c.JSON(http.StatusOK, patient.ToResponsePatients(patients))
}

func (pc *PatientController) GetPatientHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	p, err := pc.patientService.FindPatient(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		respondError(c, pc.logger, "FindPatient()", err)
		return
	}

	c.JSON(http.StatusOK, patient.ToResponsePatient(*p))
}

func (pc *PatientController) CreatePatientHandler(c *gin.Context) {
	var req patient.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, map[string]string{"body": "invalid json"})
		return
	}
	if errs := validator.Validate(req); errs != nil {
		respondInvalid(c, errs)
		return
	}

	in, err := patient.ToDomainInput(req)
	if err != nil {
		respondInvalid(c, map[string]string{"birthDate": err.Error()})
		return
	}

	p, err := pc.patientService.CreatePatient(c.Request.Context(), middleware.ClaimsFrom(c), in)
	if err != nil {
		respondError(c, pc.logger, "CreatePatient()", err)
		return
	}

	c.JSON(http.StatusCreated, patient.ToResponsePatient(*p))
}

func (pc *PatientController) UpdatePatientHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	var req patient.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, map[string]string{"body": "invalid json"})
		return
	}
	if errs := validator.Validate(req); errs != nil {
		respondInvalid(c, errs)
		return
	}

	patch, err := patient.ToDomainPatch(req)
	if err != nil {
		respondInvalid(c, map[string]string{"birthDate": err.Error()})
		return
	}

	p, err := pc.patientService.UpdatePatient(c.Request.Context(), middleware.ClaimsFrom(c), id, patch)
	if err != nil {
		respondError(c, pc.logger, "UpdatePatient()", err)
		return
	}

	c.JSON(http.StatusOK, patient.ToResponsePatient(*p))
}

func (pc *PatientController) DeactivatePatientHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	p, err := pc.patientService.DeactivatePatient(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		respondError(c, pc.logger, "DeactivatePatient()", err)
		return
	}

	c.JSON(http.StatusOK, patient.MessageResponse{
		Message: "patient deactivated",
		Patient: patient.ToResponsePatient(*p),
	})
}

func (pc *PatientController) ReactivatePatientHandler(c *gin.Context) {
	id := c.Param("id")
	if !validator.IDParam(id) {
		respondInvalid(c, map[string]string{"id": "invalid id"})
		return
	}

	p, err := pc.patientService.ReactivatePatient(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		respondError(c, pc.logger, "ReactivatePatient()", err)
		return
	}

	c.JSON(http.StatusOK, patient.MessageResponse{
		Message: "patient reactivated",
		Patient: patient.ToResponsePatient(*p),
	})
}
