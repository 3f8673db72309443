package doctor

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/models"
)

const selectWithPatientCount = `"Doctor".*, (SELECT COUNT(*) FROM "Patient" WHERE "Patient"."doctorId" = "Doctor"."id") AS "patientCount"`

type Repository struct {
	db *db.Database
}

func NewRepository(d *db.Database) domain.Repository {
	return &Repository{db: d}
}

func (r *Repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Select(selectWithPatientCount).
		Preload("User")
}

func (r *Repository) FetchDoctors(ctx context.Context, f domain.Filter) (domain.Doctors, error) {
	q := r.base(ctx).Order(clause.OrderByColumn{
		Column: clause.Column{Table: "Doctor", Name: "createdAt"},
		Desc:   true,
	})
	if !f.IncludeInactive {
		q = q.Where(map[string]any{"active": true})
	}

	var ms []models.Doctor
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	return fromDBModels(ms), nil
}

func (r *Repository) FetchDoctorByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return r.take(r.base(ctx).Where(clause.Eq{Column: clause.Column{Table: "Doctor", Name: "id"}, Value: id}))
}

func (r *Repository) FetchDoctorByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where(map[string]any{"email": email, "userType": string(user.TypeDoctor)}).
		Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.take(r.base(ctx).Where(clause.Eq{Column: clause.Column{Table: "Doctor", Name: "userId"}, Value: u.ID}))
}

// CreateDoctor writes the User and its Doctor profile in one transaction.
func (r *Repository) CreateDoctor(ctx context.Context, req domain.New) (*domain.Doctor, error) {
	var id string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := models.User{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.PasswordHash,
			UserType: string(user.TypeDoctor),
		}
		if err := tx.Create(&u).Error; err != nil {
			return db.Conflict(err)
		}

		role := req.Role
		if role == "" {
			role = user.RoleDoctor
		}
		d := models.Doctor{
			UserID:     u.ID,
			CRM:        req.CRM,
			Speciality: req.Speciality,
			Role:       string(role),
			Active:     true,
		}
		if err := tx.Omit(clause.Associations).Create(&d).Error; err != nil {
			return db.Conflict(err)
		}
		id = d.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FetchDoctorByID(ctx, id)
}

// UpdateDoctor applies p and returns the fresh row, or nil when id is unknown.
func (r *Repository) UpdateDoctor(ctx context.Context, id string, p domain.Patch) (*domain.Doctor, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Doctor
		if err := tx.Where(map[string]any{"id": id}).Take(&d).Error; err != nil {
			return err
		}

		if m := userUpdates(p); len(m) > 0 {
			if err := tx.Model(&models.User{ID: d.UserID}).Updates(m).Error; err != nil {
				return db.Conflict(err)
			}
		}
		if m := doctorUpdates(p); len(m) > 0 {
			if err := tx.Model(&models.Doctor{ID: d.ID}).Updates(m).Error; err != nil {
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

	return r.FetchDoctorByID(ctx, id)
}

func (r *Repository) SetDoctorActive(ctx context.Context, id string, active bool) (*domain.Doctor, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where(map[string]any{"id": id}).
		Update("active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.FetchDoctorByID(ctx, id)
}

func (r *Repository) take(q *gorm.DB) (*domain.Doctor, error) {
	var m models.Doctor
	if err := q.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(&m), nil
}
