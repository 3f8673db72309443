package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/dbtest"
	doctorDB "laudos-api/internal/infrastructure/db/doctor"
	laudoDB "laudos-api/internal/infrastructure/db/laudo"
	patientDB "laudos-api/internal/infrastructure/db/patient"
	userDB "laudos-api/internal/infrastructure/db/user"
	jwtSvc "laudos-api/internal/infrastructure/jwt"
	"laudos-api/internal/infrastructure/metrics"
	"laudos-api/internal/infrastructure/mq"
)

type FakePublisher struct {
	mu     sync.Mutex
	Events []mq.Event
	Full   bool
}

func (f *FakePublisher) Publish(e mq.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Full {
		return false
	}
	f.Events = append(f.Events, e)
	return true
}

func (f *FakePublisher) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Events))
	for _, e := range f.Events {
		out = append(out, e.Type)
	}
	return out
}

type FakeRevoker struct {
	RevokeFunc    func(ctx context.Context, subject, id string) error
	ClearFunc     func(ctx context.Context, subject, id string) error
	IsRevokedFunc func(ctx context.Context, c access.Claims) (bool, error)

	Revoked map[string]bool
}

func (f *FakeRevoker) Revoke(ctx context.Context, subject, id string) error {
	if f.RevokeFunc != nil {
		return f.RevokeFunc(ctx, subject, id)
	}
	if f.Revoked == nil {
		f.Revoked = map[string]bool{}
	}
	f.Revoked[subject+":"+id] = true
	return nil
}

func (f *FakeRevoker) Clear(ctx context.Context, subject, id string) error {
	if f.ClearFunc != nil {
		return f.ClearFunc(ctx, subject, id)
	}
	delete(f.Revoked, subject+":"+id)
	return nil
}

func (f *FakeRevoker) IsRevoked(ctx context.Context, c access.Claims) (bool, error) {
	if f.IsRevokedFunc == nil {
		return false, nil
	}
	return f.IsRevokedFunc(ctx, c)
}

type FakeSnapshotter struct {
	SnapshotFunc func(ctx context.Context, dst string) error
}

func (f *FakeSnapshotter) Snapshot(ctx context.Context, dst string) error {
	return f.SnapshotFunc(ctx, dst)
}

// env wires every service against one in-memory database.
type env struct {
	db        *db.Database
	publisher *FakePublisher
	revoker   *FakeRevoker

	auth      ports.AuthService
	doctors   ports.DoctorService
	patients  ports.PatientService
	laudos    ports.LaudoService
	seed      ports.SeedService
	dashboard ports.DashboardService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	d := dbtest.Open(t)
	logger := zap.NewNop()
	counter := metrics.NewCounter(nil)
	pub := &FakePublisher{}
	rev := &FakeRevoker{}

	users := userDB.NewRepository(d)
	doctors := doctorDB.NewRepository(d)
	patients := patientDB.NewRepository(d)
	laudos := laudoDB.NewRepository(d)

	return &env{
		db:        d,
		publisher: pub,
		revoker:   rev,
		auth:      NewAuthService(users, doctors, patients, jwtSvc.New("test-secret", time.Hour), counter),
		doctors:   NewDoctorService(doctors, pub, rev, logger, counter),
		patients:  NewPatientService(patients, pub, rev, logger, counter),
		laudos:    NewLaudoService(laudos, patients, pub, logger, counter),
		seed:      NewSeedService(doctors, logger),
		dashboard: NewDashboardService(patients, laudos),
	}
}

func doctorClaims(doctorID string, role user.Role) access.Claims {
	return access.Claims{UserID: "u-" + doctorID, UserType: user.TypeDoctor, Role: role, DoctorID: doctorID}
}

func patientClaims(patientID string) access.Claims {
	return access.Claims{UserID: "u-" + patientID, UserType: user.TypePatient, PatientID: patientID}
}
