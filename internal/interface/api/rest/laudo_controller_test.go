package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laudos-api/config"
	"laudos-api/internal/application/apperr"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/laudo"
	"laudos-api/internal/infrastructure/storage"
)

func validLaudoBody() map[string]any {
	return map[string]any{
		"title":       "Hemograma",
		"description": "Hemograma completo de rotina",
		"diagnosis":   "Sem alteracoes relevantes",
		"examDate":    "2024-08-10",
		"patientId":   "p-1",
		"attachments": []string{"x.pdf", "y.pdf"},
	}
}

func TestLaudoController_CreateLaudoHandler(t *testing.T) {
	var got laudo.New
	ls := &FakeLaudoService{CreateLaudoFunc: func(_ context.Context, c access.Claims, in laudo.New) (*laudo.Laudo, error) {
		if c.DoctorID != "d-a" {
			return nil, apperr.ErrPatientNotOwned
		}
		got = in
		return &laudo.Laudo{
			ID: "l-1", Title: in.Title, Description: in.Description, Diagnosis: in.Diagnosis,
			ExamDate: in.ExamDate, Attachments: in.Attachments, PatientID: in.PatientID,
			PatientName: "Paciente", PatientEmail: "p@mail.com",
		}, nil
	}}

	ta := newTestAuth()
	r := newEngine()
	urls := storage.New(zap.NewNop(), config.Storage{PublicURL: "https://files.example.com"})
	NewLaudoController(r, ls, urls, zap.NewNop(), ta.middleware())

	rr := doReq(t, r, http.MethodPost, RouteLaudos, validLaudoBody(), ta.header(t, doctorClaims))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), got.ExamDate)

	resp := decode(t, rr)
	assert.Equal(t, []any{"x.pdf", "y.pdf"}, resp["attachments"])
	assert.Equal(t, []any{"https://files.example.com/x.pdf", "https://files.example.com/y.pdf"}, resp["attachmentUrls"])
	assert.Equal(t, "Paciente", resp["patient"].(map[string]any)["name"])

	other := access.Claims{UserID: "u-b", UserType: doctorClaims.UserType, Role: doctorClaims.Role, DoctorID: "d-b"}
	rr = doReq(t, r, http.MethodPost, RouteLaudos, validLaudoBody(), ta.header(t, other))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "PATIENT_NOT_FOUND", decode(t, rr)["code"])

	bad := validLaudoBody()
	bad["title"] = "ab"
	bad["description"] = "short"
	bad["examDate"] = "yesterday"
	delete(bad, "patientId")
	rr = doReq(t, r, http.MethodPost, RouteLaudos, bad, ta.header(t, doctorClaims))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	details := decode(t, rr)["details"].(map[string]any)
	for _, k := range []string{"title", "description", "examDate", "patientId"} {
		assert.Contains(t, details, k)
	}
}

func TestLaudoController_GetLaudosHandler(t *testing.T) {
	var gotPatient string
	ls := &FakeLaudoService{FindLaudosFunc: func(_ context.Context, _ access.Claims, patientID string) (laudo.Laudos, error) {
		gotPatient = patientID
		return laudo.Laudos{{ID: "l-1", PatientID: "p-1"}}, nil
	}}

	ta := newTestAuth()
	r := newEngine()
	NewLaudoController(r, ls, storage.New(zap.NewNop(), config.Storage{}), zap.NewNop(), ta.middleware())

	rr := doReq(t, r, http.MethodGet, RouteLaudos+"?patientId=p-1", nil, ta.header(t, patientClaims))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "p-1", gotPatient)

	list := decodeList(t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, []any{}, list[0]["attachments"])
	assert.NotContains(t, list[0], "attachmentUrls")
}
