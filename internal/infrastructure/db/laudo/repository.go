package laudo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "laudos-api/internal/domain/laudo"
	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/models"
)

type Repository struct {
	db *db.Database
}

func NewRepository(d *db.Database) domain.Repository {
	return &Repository{db: d}
}

// scoped narrows to one doctor through the patient relation and/or one patient.
func (r *Repository) scoped(ctx context.Context, f domain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Laudo{})
	if f.DoctorID != "" {
		owned := r.db.WithContext(ctx).
			Model(&models.Patient{}).
			Select("id").
			Where(map[string]any{"doctorId": f.DoctorID})
		q = q.Where(`"patientId" IN (?)`, owned)
	}
	if f.PatientID != "" {
		q = q.Where(map[string]any{"patientId": f.PatientID})
	}
	return q
}

func (r *Repository) FetchLaudos(ctx context.Context, f domain.Filter) (domain.Laudos, error) {
	q := r.scoped(ctx, f).
		Preload("Patient.User").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "examDate"}, Desc: true})

	var ms []models.Laudo
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	return fromDBModels(ms), nil
}

func (r *Repository) CountLaudos(ctx context.Context, f domain.Filter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) CreateLaudo(ctx context.Context, req domain.New) (*domain.Laudo, error) {
	m := models.Laudo{
		Title:       req.Title,
		Description: req.Description,
		Diagnosis:   req.Diagnosis,
		ExamDate:    req.ExamDate,
		Attachments: req.Attachments,
		PatientID:   req.PatientID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, err
	}

	var out models.Laudo
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Where(map[string]any{"id": m.ID}).
		Take(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(&out), nil
}
