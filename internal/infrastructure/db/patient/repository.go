package patient

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "laudos-api/internal/domain/patient"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/models"
)

const selectWithLaudoCount = `"Patient".*, (SELECT COUNT(*) FROM "Laudo" WHERE "Laudo"."patientId" = "Patient"."id") AS "laudoCount"`

type Repository struct {
	db *db.Database
}

func NewRepository(d *db.Database) domain.Repository {
	return &Repository{db: d}
}

func (r *Repository) scoped(ctx context.Context, f domain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Patient{})
	if f.DoctorID != "" {
		q = q.Where(map[string]any{"doctorId": f.DoctorID})
	}
	if !f.IncludeInactive {
		q = q.Where(map[string]any{"active": true})
	}
	return q
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Select(selectWithLaudoCount).Preload("User").Preload("Doctor.User")
}

func (r *Repository) FetchPatients(ctx context.Context, f domain.Filter) (domain.Patients, error) {
	q := withRelations(r.scoped(ctx, f)).Order(clause.OrderByColumn{
		Column: clause.Column{Table: "Patient", Name: "createdAt"},
		Desc:   true,
	})

	var ms []models.Patient
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	return fromDBModels(ms), nil
}

func (r *Repository) CountPatients(ctx context.Context, f domain.Filter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// FetchPatientByID ignores the active flag: ownership checks must see
// deactivated patients too.
func (r *Repository) FetchPatientByID(ctx context.Context, id string) (*domain.Patient, error) {
	q := withRelations(r.db.WithContext(ctx).Model(&models.Patient{})).
		Where(clause.Eq{Column: clause.Column{Table: "Patient", Name: "id"}, Value: id})

	var m models.Patient
	if err := q.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(&m), nil
}

func (r *Repository) CreatePatient(ctx context.Context, req domain.New) (*domain.Patient, error) {
	var id string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := models.User{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.PasswordHash,
			UserType: string(user.TypePatient),
		}
		if err := tx.Create(&u).Error; err != nil {
			return db.Conflict(err)
		}

		p := models.Patient{
			UserID:    u.ID,
			CPF:       req.CPF,
			BirthDate: req.BirthDate,
			Phone:     req.Phone,
			Address:   req.Address,
			Active:    true,
			DoctorID:  req.DoctorID,
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return db.Conflict(err)
		}
		id = p.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FetchPatientByID(ctx, id)
}

func (r *Repository) UpdatePatient(ctx context.Context, id string, p domain.Patch) (*domain.Patient, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Patient
		if err := tx.Where(map[string]any{"id": id}).Take(&m).Error; err != nil {
			return err
		}

		if u := userUpdates(p); len(u) > 0 {
			if err := tx.Model(&models.User{ID: m.UserID}).Updates(u).Error; err != nil {
				return db.Conflict(err)
			}
		}
		if u := patientUpdates(p); len(u) > 0 {
			if err := tx.Model(&models.Patient{ID: m.ID}).Updates(u).Error; err != nil {
				return db.Conflict(err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.FetchPatientByID(ctx, id)
}

func (r *Repository) SetPatientActive(ctx context.Context, id string, active bool) (*domain.Patient, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where(map[string]any{"id": id}).
		Update("active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.FetchPatientByID(ctx, id)
}
