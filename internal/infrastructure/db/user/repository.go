package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/models"
)

type Repository struct {
	db *db.Database
}

func NewRepository(d *db.Database) domain.Repository {
	return &Repository{db: d}
}

// FetchAccountByEmail returns the user with its attached profile, or nil when
// the email is unknown. Rows restored from older backups may keep mixed case.
func (r *Repository) FetchAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	tx := r.db.WithContext(ctx)

	var u models.User
	if err := tx.Where(`LOWER("email") = LOWER(?)`, email).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	acc := &domain.Account{User: fromDBModel(&u)}

	switch acc.UserType {
	case domain.TypeDoctor:
		var d models.Doctor
		err := tx.Where(map[string]any{"userId": u.ID}).Take(&d).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			acc.DoctorID = &d.ID
			acc.Role = domain.Role(d.Role)
			acc.DoctorActive = d.Active
		}
	case domain.TypePatient:
		var p models.Patient
		err := tx.Where(map[string]any{"userId": u.ID}).Take(&p).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			acc.PatientID = &p.ID
			acc.PatientActive = p.Active
		}
	}

	return acc, nil
}
