package access

import (
	"time"

	"laudos-api/internal/domain/user"
)

type (
	// Claims is the identity carried by a session token. Nothing in it is
	// re-read from storage while the token is valid.
	Claims struct {
		UserID    string
		UserType  user.Type
		Role      user.Role
		DoctorID  string
		PatientID string
	}

	Session struct {
		Token     string
		ExpiresAt time.Time
		Claims    Claims
		Name      string
		Email     string
	}
)

func (c Claims) IsDoctor() bool { return c.UserType == user.TypeDoctor && c.DoctorID != "" }

func (c Claims) IsAdmin() bool { return c.IsDoctor() && c.Role == user.RoleDoctorAdmin }

func (c Claims) IsPatient() bool { return c.UserType == user.TypePatient && c.PatientID != "" }
