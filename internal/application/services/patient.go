package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/patient"
	"laudos-api/internal/infrastructure/cache"
	"laudos-api/internal/infrastructure/metrics"
	"laudos-api/internal/infrastructure/mq"
	"laudos-api/pkg/fold"
)

type PatientService struct {
	patientRepository patient.Repository
	mCounter          *prometheus.CounterVec
	notify            notifier
}

func NewPatientService(
	patientRepository patient.Repository,
	publisher ports.EventPublisher,
	revoker ports.Revoker,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.PatientService {
	return &PatientService{
		patientRepository: patientRepository,
		mCounter:          mCounter,
		notify: notifier{
			publisher: publisher,
			revoker:   revoker,
			logger:    logger,
			mCounter:  mCounter,
		},
	}
}

func (ps *PatientService) FindPatients(ctx context.Context, c access.Claims, includeInactive bool, q string) (patient.Patients, error) {
	scope, ok := access.ListScope(c, access.ResourcePatient)
	if !ok {
		return nil, apperr.ErrForbidden
	}

	f := patient.Filter{IncludeInactive: includeInactive}
	if !scope.All {
		f.DoctorID = scope.DoctorID
	}

	list, err := ps.patientRepository.FetchPatients(ctx, f)
	if err != nil {
		return nil, err
	}

	m := fold.NewMatcher(q)
	if m.Empty() {
		return list, nil
	}
	out := make(patient.Patients, 0, len(list))
	for _, p := range list {
		if m.Match(p.Name, p.Email, p.CPF) {
			out = append(out, p)
		}
	}
	return out, nil
}

// target loads a patient for a doctor-only operation and applies the
// role gate, existence check and ownership check in that order.
func (ps *PatientService) target(ctx context.Context, c access.Claims, id string, op access.Operation) (*patient.Patient, error) {
	if !c.IsDoctor() {
		return nil, apperr.ErrForbidden
	}

	p, err := ps.patientRepository.FetchPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPatientNotFound
	}

	if !access.Resolve(c, access.ResourcePatient, access.Owner{DoctorID: p.DoctorID, PatientID: p.ID}).Has(op) {
		return nil, apperr.ErrForbidden
	}
	return p, nil
}

// FindPatient is open to the owning doctor, any admin and the patient themself.
func (ps *PatientService) FindPatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error) {
	if !c.IsDoctor() && !c.IsPatient() {
		return nil, apperr.ErrForbidden
	}

	p, err := ps.patientRepository.FetchPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPatientNotFound
	}
	if !access.Resolve(c, access.ResourcePatient, access.Owner{DoctorID: p.DoctorID, PatientID: p.ID}).Has(access.OpRead) {
		return nil, apperr.ErrForbidden
	}
	return p, nil
}

func (ps *PatientService) CreatePatient(ctx context.Context, c access.Claims, in ports.PatientInput) (*patient.Patient, error) {
	if !access.Resolve(c, access.ResourcePatient, access.Owner{}).Has(access.OpCreate) {
		return nil, apperr.ErrForbidden
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	p, err := ps.patientRepository.CreatePatient(ctx, patient.New{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		CPF:          in.CPF,
		BirthDate:    in.BirthDate,
		Phone:        in.Phone,
		Address:      in.Address,
		DoctorID:     c.DoctorID,
	})
	if err != nil {
		return nil, err
	}

	ps.notify.publish(mq.NewEvent(mq.PatientCreated, c.UserID, p.ID, patientPayload(p)))
	ps.mCounter.WithLabelValues(metrics.PatientCreated).Inc()

	return p, nil
}

func (ps *PatientService) UpdatePatient(ctx context.Context, c access.Claims, id string, patch patient.Patch) (*patient.Patient, error) {
	if _, err := ps.target(ctx, c, id, access.OpUpdate); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		v := strings.TrimSpace(*patch.Name)
		patch.Name = &v
	}
	if patch.Email != nil {
		v := normalizeEmail(*patch.Email)
		patch.Email = &v
	}

	p, err := ps.patientRepository.UpdatePatient(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPatientNotFound
	}

	ps.notify.publish(mq.NewEvent(mq.PatientUpdated, c.UserID, p.ID, patientPayload(p)))
	ps.mCounter.WithLabelValues(metrics.PatientUpdated).Inc()

	return p, nil
}

func (ps *PatientService) DeactivatePatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error) {
	if _, err := ps.target(ctx, c, id, access.OpDeactivate); err != nil {
		return nil, err
	}

	p, err := ps.patientRepository.SetPatientActive(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPatientNotFound
	}

	ps.notify.revoke(ctx, cache.SubjectPatient, p.ID)
	ps.notify.publish(mq.NewEvent(mq.PatientDeactivated, c.UserID, p.ID, nil))
	ps.mCounter.WithLabelValues(metrics.PatientDeactivated).Inc()

	return p, nil
}

func (ps *PatientService) ReactivatePatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error) {
	if _, err := ps.target(ctx, c, id, access.OpRestore); err != nil {
		return nil, err
	}

	p, err := ps.patientRepository.SetPatientActive(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPatientNotFound
	}

	ps.notify.clear(ctx, cache.SubjectPatient, p.ID)
	ps.notify.publish(mq.NewEvent(mq.PatientReactivated, c.UserID, p.ID, nil))
	ps.mCounter.WithLabelValues(metrics.PatientReactivated).Inc()

	return p, nil
}

func patientPayload(p *patient.Patient) map[string]any {
	return map[string]any{
		"doctor_id": p.DoctorID,
		"active":    p.Active,
	}
}
