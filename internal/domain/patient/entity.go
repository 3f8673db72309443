package patient

import (
	"time"
)

type (
	Patient struct {
		ID        string
		UserID    string
		CPF       string
		BirthDate time.Time
		Phone     *string
		Address   *string
		Active    bool
		DoctorID  string

		Name       string
		Email      string
		DoctorName string

		LaudoCount int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Patients []*Patient

	New struct {
		Name         string
		Email        string
		PasswordHash string
		CPF          string
		BirthDate    time.Time
		Phone        *string
		Address      *string
		DoctorID     string
	}

	Patch struct {
		Name      *string
		Email     *string
		CPF       *string
		BirthDate *time.Time
		Phone     *string
		Address   *string
	}

	// Filter narrows a listing; an empty DoctorID means every doctor.
	Filter struct {
		DoctorID        string
		IncludeInactive bool
	}
)
