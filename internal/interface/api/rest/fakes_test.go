package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/laudo"
	"laudos-api/internal/domain/patient"
	"laudos-api/internal/domain/user"
	jwtSvc "laudos-api/internal/infrastructure/jwt"
	"laudos-api/internal/interface/api/rest/middleware"
)

var errNotUsed = errors.New("not used")

type FakeAuthService struct {
	LoginFunc   func(ctx context.Context, email, password string) (*access.Session, error)
	CurrentFunc func(ctx context.Context, c access.Claims) (*access.Session, error)
}

func (f *FakeAuthService) Login(ctx context.Context, email, password string) (*access.Session, error) {
	if f.LoginFunc == nil {
		return nil, errNotUsed
	}
	return f.LoginFunc(ctx, email, password)
}
func (f *FakeAuthService) Current(ctx context.Context, c access.Claims) (*access.Session, error) {
	if f.CurrentFunc == nil {
		return nil, errNotUsed
	}
	return f.CurrentFunc(ctx, c)
}

type FakeDoctorService struct {
	FindDoctorsFunc      func(ctx context.Context, c access.Claims, f doctor.Filter, q string) (doctor.Doctors, error)
	CreateDoctorFunc     func(ctx context.Context, c access.Claims, in ports.DoctorInput) (*doctor.Doctor, error)
	UpdateDoctorFunc     func(ctx context.Context, c access.Claims, id string, p doctor.Patch) (*doctor.Doctor, error)
	DeactivateDoctorFunc func(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error)
	ReactivateDoctorFunc func(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error)
}

func (f *FakeDoctorService) FindDoctors(ctx context.Context, c access.Claims, fl doctor.Filter, q string) (doctor.Doctors, error) {
	if f.FindDoctorsFunc == nil {
		return nil, errNotUsed
	}
	return f.FindDoctorsFunc(ctx, c, fl, q)
}
func (f *FakeDoctorService) CreateDoctor(ctx context.Context, c access.Claims, in ports.DoctorInput) (*doctor.Doctor, error) {
	if f.CreateDoctorFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateDoctorFunc(ctx, c, in)
}
func (f *FakeDoctorService) UpdateDoctor(ctx context.Context, c access.Claims, id string, p doctor.Patch) (*doctor.Doctor, error) {
	if f.UpdateDoctorFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateDoctorFunc(ctx, c, id, p)
}
func (f *FakeDoctorService) DeactivateDoctor(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error) {
	if f.DeactivateDoctorFunc == nil {
		return nil, errNotUsed
	}
	return f.DeactivateDoctorFunc(ctx, c, id)
}
func (f *FakeDoctorService) ReactivateDoctor(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error) {
	if f.ReactivateDoctorFunc == nil {
		return nil, errNotUsed
	}
	return f.ReactivateDoctorFunc(ctx, c, id)
}

type FakePatientService struct {
	FindPatientsFunc      func(ctx context.Context, c access.Claims, includeInactive bool, q string) (patient.Patients, error)
	FindPatientFunc       func(ctx context.Context, c access.Claims, id string) (*patient.Patient, error)
	CreatePatientFunc     func(ctx context.Context, c access.Claims, in ports.PatientInput) (*patient.Patient, error)
	UpdatePatientFunc     func(ctx context.Context, c access.Claims, id string, p patient.Patch) (*patient.Patient, error)
	DeactivatePatientFunc func(ctx context.Context, c access.Claims, id string) (*patient.Patient, error)
	ReactivatePatientFunc func(ctx context.Context, c access.Claims, id string) (*patient.Patient, error)
}

func (f *FakePatientService) FindPatients(ctx context.Context, c access.Claims, includeInactive bool, q string) (patient.Patients, error) {
	if f.FindPatientsFunc == nil {
		return nil, errNotUsed
	}
	return f.FindPatientsFunc(ctx, c, includeInactive, q)
}
func (f *FakePatientService) FindPatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error) {
	if f.FindPatientFunc == nil {
		return nil, errNotUsed
	}
	return f.FindPatientFunc(ctx, c, id)
}
func (f *FakePatientService) CreatePatient(ctx context.Context, c access.Claims, in ports.PatientInput) (*patient.Patient, error) {
	if f.CreatePatientFunc == nil {
		return nil, errNotUsed
	}
	return f.CreatePatientFunc(ctx, c, in)
}
func (f *FakePatientService) UpdatePatient(ctx context.Context, c access.Claims, id string, p patient.Patch) (*patient.Patient, error) {
	if f.UpdatePatientFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdatePatientFunc(ctx, c, id, p)
}
func (f *FakePatientService) DeactivatePatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error) {
	if f.DeactivatePatientFunc == nil {
		return nil, errNotUsed
	}
	return f.DeactivatePatientFunc(ctx, c, id)
}
func (f *FakePatientService) ReactivatePatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error) {
	if f.ReactivatePatientFunc == nil {
		return nil, errNotUsed
	}
	return f.ReactivatePatientFunc(ctx, c, id)
}

type FakeLaudoService struct {
	FindLaudosFunc  func(ctx context.Context, c access.Claims, patientID string) (laudo.Laudos, error)
	CreateLaudoFunc func(ctx context.Context, c access.Claims, in laudo.New) (*laudo.Laudo, error)
}

func (f *FakeLaudoService) FindLaudos(ctx context.Context, c access.Claims, patientID string) (laudo.Laudos, error) {
	if f.FindLaudosFunc == nil {
		return nil, errNotUsed
	}
	return f.FindLaudosFunc(ctx, c, patientID)
}
func (f *FakeLaudoService) CreateLaudo(ctx context.Context, c access.Claims, in laudo.New) (*laudo.Laudo, error) {
	if f.CreateLaudoFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateLaudoFunc(ctx, c, in)
}

type FakeBackupService struct {
	OpenBackupFunc func(ctx context.Context, c access.Claims) (*ports.Backup, error)
}

func (f *FakeBackupService) OpenBackup(ctx context.Context, c access.Claims) (*ports.Backup, error) {
	if f.OpenBackupFunc == nil {
		return nil, errNotUsed
	}
	return f.OpenBackupFunc(ctx, c)
}

type FakeRevoker struct {
	IsRevokedFunc func(ctx context.Context, c access.Claims) (bool, error)
}

func (f *FakeRevoker) Revoke(context.Context, string, string) error { return nil }
func (f *FakeRevoker) Clear(context.Context, string, string) error  { return nil }
func (f *FakeRevoker) IsRevoked(ctx context.Context, c access.Claims) (bool, error) {
	if f.IsRevokedFunc == nil {
		return false, nil
	}
	return f.IsRevokedFunc(ctx, c)
}

type FakeRateLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, time.Duration, error)
	Resets    []string
}

func (f *FakeRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if f.AllowFunc == nil {
		return true, 0, nil
	}
	return f.AllowFunc(ctx, key)
}
func (f *FakeRateLimiter) Reset(_ context.Context, key string) error {
	f.Resets = append(f.Resets, key)
	return nil
}

type FakePinger struct {
	Err error
}

func (f *FakePinger) Ping(context.Context) error { return f.Err }

var (
	adminClaims   = access.Claims{UserID: "u-admin", UserType: user.TypeDoctor, Role: user.RoleDoctorAdmin, DoctorID: "d-admin"}
	doctorClaims  = access.Claims{UserID: "u-a", UserType: user.TypeDoctor, Role: user.RoleDoctor, DoctorID: "d-a"}
	patientClaims = access.Claims{UserID: "u-p", UserType: user.TypePatient, PatientID: "p-1"}
)

// testAuth is the middleware every controller test wires, backed by a real
// token service.
type testAuth struct {
	jwt     *jwtSvc.Service
	revoker *FakeRevoker
}

func newTestAuth() *testAuth {
	return &testAuth{jwt: jwtSvc.New("test-secret", time.Hour), revoker: &FakeRevoker{}}
}

func (ta *testAuth) middleware() gin.HandlerFunc {
	return middleware.AuthMiddleware(ta.jwt, ta.revoker, zap.NewNop())
}

func (ta *testAuth) header(t *testing.T, c access.Claims) map[string]string {
	t.Helper()
	tok, _, err := ta.jwt.Issue(c)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
