package doctor

import (
	"time"
)

type (
	UserSummary struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	Doctor struct {
		ID           string      `json:"id"`
		UserID       string      `json:"userId"`
		CRM          string      `json:"crm"`
		Speciality   string      `json:"speciality"`
		Role         string      `json:"role"`
		Active       bool        `json:"active"`
		User         UserSummary `json:"user"`
		PatientCount int64       `json:"patientCount"`
		CreatedAt    time.Time   `json:"createdAt"`
		UpdatedAt    time.Time   `json:"updatedAt"`
	}
	Doctors []Doctor

	MessageResponse struct {
		Message string `json:"message"`
		Doctor  Doctor `json:"doctor"`
	}
)
