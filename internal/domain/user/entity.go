package user

import (
	"time"
)

type (
	Type string
	Role string

	User struct {
		ID           string
		Email        string
		Name         string
		PasswordHash string
		UserType     Type

		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Account is a User joined with whichever profile is attached to it.
	// Exactly one of DoctorID / PatientID is set for a consistent row.
	Account struct {
		User

		DoctorID     *string
		Role         Role
		DoctorActive bool

		PatientID     *string
		PatientActive bool
	}
)

const (
	TypeDoctor  Type = "DOCTOR"
	TypePatient Type = "PATIENT"

	RoleDoctor      Role = "DOCTOR"
	RoleDoctorAdmin Role = "DOCTOR_ADMIN"
)

func (r Role) Valid() bool { return r == RoleDoctor || r == RoleDoctorAdmin }

// Active reports whether the attached profile allows a new session.
func (a *Account) Active() bool {
	switch a.UserType {
	case TypeDoctor:
		return a.DoctorID == nil || a.DoctorActive
	case TypePatient:
		return a.PatientID == nil || a.PatientActive
	}
	return true
}
