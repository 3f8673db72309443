package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/cache"
	"laudos-api/internal/infrastructure/metrics"
	"laudos-api/internal/infrastructure/mq"
	"laudos-api/pkg/fold"
)

type DoctorService struct {
	doctorRepository doctor.Repository
	mCounter         *prometheus.CounterVec
	notify           notifier
}

func NewDoctorService(
	doctorRepository doctor.Repository,
	publisher ports.EventPublisher,
	revoker ports.Revoker,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.DoctorService {
	return &DoctorService{
		doctorRepository: doctorRepository,
		mCounter:         mCounter,
		notify: notifier{
			publisher: publisher,
			revoker:   revoker,
			logger:    logger,
			mCounter:  mCounter,
		},
	}
}

func (ds *DoctorService) FindDoctors(ctx context.Context, c access.Claims, f doctor.Filter, q string) (doctor.Doctors, error) {
	if _, ok := access.ListScope(c, access.ResourceDoctor); !ok {
		return nil, apperr.ErrForbidden
	}

	list, err := ds.doctorRepository.FetchDoctors(ctx, f)
	if err != nil {
		return nil, err
	}

	m := fold.NewMatcher(q)
	if m.Empty() {
		return list, nil
	}
	out := make(doctor.Doctors, 0, len(list))
	for _, d := range list {
		if m.Match(d.Name, d.Email, d.CRM) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (ds *DoctorService) CreateDoctor(ctx context.Context, c access.Claims, in ports.DoctorInput) (*doctor.Doctor, error) {
	if !access.Resolve(c, access.ResourceDoctor, access.Owner{}).Has(access.OpCreate) {
		return nil, apperr.ErrForbidden
	}

	role := user.RoleDoctor
	if in.Role != "" {
		role = user.Role(in.Role)
		if !role.Valid() {
			return nil, apperr.Validation("role", "role must be one of DOCTOR DOCTOR_ADMIN")
		}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	d, err := ds.doctorRepository.CreateDoctor(ctx, doctor.New{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		CRM:          strings.TrimSpace(in.CRM),
		Speciality:   strings.TrimSpace(in.Speciality),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	ds.notify.publish(mq.NewEvent(mq.DoctorCreated, c.UserID, d.ID, doctorPayload(d)))
	ds.mCounter.WithLabelValues(metrics.DoctorCreated).Inc()

	return d, nil
}

func (ds *DoctorService) UpdateDoctor(ctx context.Context, c access.Claims, id string, p doctor.Patch) (*doctor.Doctor, error) {
	if !c.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	if p.Role != nil && !p.Role.Valid() {
		return nil, apperr.Validation("role", "role must be one of DOCTOR DOCTOR_ADMIN")
	}

	target, err := ds.doctorRepository.FetchDoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrDoctorNotFound
	}

	ops := access.Resolve(c, access.ResourceDoctor, access.Owner{DoctorID: target.ID})
	if !ops.Has(access.OpUpdate) {
		return nil, apperr.ErrForbidden
	}
	if p.Role != nil && *p.Role != target.Role && !ops.Has(access.OpChangeRole) {
		if target.ID == c.DoctorID {
			return nil, apperr.ErrCannotDemoteSelf
		}
		return nil, apperr.ErrForbidden
	}

	normalizeDoctorPatch(&p)

	d, err := ds.doctorRepository.UpdateDoctor(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDoctorNotFound
	}

	ds.notify.publish(mq.NewEvent(mq.DoctorUpdated, c.UserID, d.ID, doctorPayload(d)))
	ds.mCounter.WithLabelValues(metrics.DoctorUpdated).Inc()

	return d, nil
}

func (ds *DoctorService) DeactivateDoctor(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error) {
	if !c.IsAdmin() {
		return nil, apperr.ErrForbidden
	}

	target, err := ds.doctorRepository.FetchDoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrDoctorNotFound
	}
	if !access.Resolve(c, access.ResourceDoctor, access.Owner{DoctorID: target.ID}).Has(access.OpDeactivate) {
		if target.ID == c.DoctorID {
			return nil, apperr.ErrCannotDeactivateSelf
		}
		return nil, apperr.ErrForbidden
	}

	d, err := ds.doctorRepository.SetDoctorActive(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDoctorNotFound
	}

	ds.notify.revoke(ctx, cache.SubjectDoctor, d.ID)
	ds.notify.publish(mq.NewEvent(mq.DoctorDeactivated, c.UserID, d.ID, nil))
	ds.mCounter.WithLabelValues(metrics.DoctorDeactivated).Inc()

	return d, nil
}

func (ds *DoctorService) ReactivateDoctor(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error) {
	if !c.IsAdmin() {
		return nil, apperr.ErrForbidden
	}

	target, err := ds.doctorRepository.FetchDoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrDoctorNotFound
	}
	if !access.Resolve(c, access.ResourceDoctor, access.Owner{DoctorID: target.ID}).Has(access.OpRestore) {
		return nil, apperr.ErrForbidden
	}

	d, err := ds.doctorRepository.SetDoctorActive(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDoctorNotFound
	}

	ds.notify.clear(ctx, cache.SubjectDoctor, d.ID)
	ds.notify.publish(mq.NewEvent(mq.DoctorReactivated, c.UserID, d.ID, nil))
	ds.mCounter.WithLabelValues(metrics.DoctorReactivated).Inc()

	return d, nil
}

func normalizeDoctorPatch(p *doctor.Patch) {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	p.Name = trim(p.Name)
	p.CRM = trim(p.CRM)
	p.Speciality = trim(p.Speciality)
	if p.Email != nil {
		v := normalizeEmail(*p.Email)
		p.Email = &v
	}
}

func doctorPayload(d *doctor.Doctor) map[string]any {
	return map[string]any{
		"crm":        d.CRM,
		"speciality": d.Speciality,
		"role":       d.Role,
		"active":     d.Active,
	}
}
