package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/laudo"
	"laudos-api/internal/domain/patient"
	"laudos-api/internal/infrastructure/metrics"
	"laudos-api/internal/infrastructure/mq"
)

type LaudoService struct {
	laudoRepository   laudo.Repository
	patientRepository patient.Repository
	mCounter          *prometheus.CounterVec
	notify            notifier
}

func NewLaudoService(
	laudoRepository laudo.Repository,
	patientRepository patient.Repository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.LaudoService {
	return &LaudoService{
		laudoRepository:   laudoRepository,
		patientRepository: patientRepository,
		mCounter:          mCounter,
		notify: notifier{
			publisher: publisher,
			logger:    logger,
			mCounter:  mCounter,
		},
	}
}

// FindLaudos lists what the caller may read. A patient asking for someone
// else's laudos gets an empty list rather than an error.
func (ls *LaudoService) FindLaudos(ctx context.Context, c access.Claims, patientID string) (laudo.Laudos, error) {
	scope, ok := access.ListScope(c, access.ResourceLaudo)
	if !ok {
		return nil, apperr.ErrForbidden
	}

	var f laudo.Filter
	if !scope.All {
		f.DoctorID = scope.DoctorID
		f.PatientID = scope.PatientID
	}
	if patientID != "" {
		if f.PatientID != "" && f.PatientID != patientID {
			return laudo.Laudos{}, nil
		}
		f.PatientID = patientID
	}

	return ls.laudoRepository.FetchLaudos(ctx, f)
}

// CreateLaudo reports a patient outside the caller's ownership as not found.
func (ls *LaudoService) CreateLaudo(ctx context.Context, c access.Claims, in laudo.New) (*laudo.Laudo, error) {
	if !c.IsDoctor() {
		return nil, apperr.ErrForbidden
	}

	p, err := ls.patientRepository.FetchPatientByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPatientNotOwned
	}
	if !access.Resolve(c, access.ResourceLaudo, access.Owner{DoctorID: p.DoctorID, PatientID: p.ID}).Has(access.OpCreate) {
		return nil, apperr.ErrPatientNotOwned
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Attachments == nil {
		in.Attachments = []string{}
	}

	l, err := ls.laudoRepository.CreateLaudo(ctx, in)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrPatientNotOwned
	}

	ls.notify.publish(mq.NewEvent(mq.LaudoCreated, c.UserID, l.ID, map[string]any{
		"patient_id":  l.PatientID,
		"attachments": len(l.Attachments),
	}))
	ls.mCounter.WithLabelValues(metrics.LaudoCreated).Inc()

	return l, nil
}
