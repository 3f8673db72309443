package doctor

import (
	"time"

	"laudos-api/internal/domain/user"
)

type (
	Doctor struct {
		ID         string
		UserID     string
		CRM        string
		Speciality string
		Role       user.Role
		Active     bool

		Name  string
		Email string

		PatientCount int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Doctors []*Doctor

	// New carries everything needed to create the User row and its Doctor profile.
	New struct {
		Name         string
		Email        string
		PasswordHash string
		CRM          string
		Speciality   string
		Role         user.Role
	}

	// Patch holds the fields of a partial update; nil means "leave unchanged".
	Patch struct {
		Name       *string
		Email      *string
		CRM        *string
		Speciality *string
		Role       *user.Role
	}

	Filter struct {
		IncludeInactive bool
	}
)

func (d *Doctor) IsAdmin() bool { return d.Role == user.RoleDoctorAdmin }
