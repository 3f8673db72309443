package patient

import (
	"time"
)

type (
	UserSummary struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	DoctorSummary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Patient struct {
		ID         string        `json:"id"`
		UserID     string        `json:"userId"`
		CPF        string        `json:"cpf"`
		BirthDate  time.Time     `json:"birthDate"`
		Phone      *string       `json:"phone"`
		Address    *string       `json:"address"`
		Active     bool          `json:"active"`
		DoctorID   string        `json:"doctorId"`
		User       UserSummary   `json:"user"`
		Doctor     DoctorSummary `json:"doctor"`
		LaudoCount int64         `json:"laudoCount"`
		CreatedAt  time.Time     `json:"createdAt"`
		UpdatedAt  time.Time     `json:"updatedAt"`
	}
	Patients []Patient

	MessageResponse struct {
		Message string  `json:"message"`
		Patient Patient `json:"patient"`
	}
)
