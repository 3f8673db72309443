package auth

import (
	"time"
)

type (
	User struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Email     string  `json:"email"`
		UserType  string  `json:"userType"`
		Role      *string `json:"role"`
		DoctorID  *string `json:"doctorId"`
		PatientID *string `json:"patientId"`
	}

	LoginResponse struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		ExpiresAt   time.Time `json:"expires_at"`
		User        User      `json:"user"`
	}

	SessionResponse struct {
		User User `json:"user"`
	}
)
