package auth

import (
	"laudos-api/internal/domain/access"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ToResponseUser(s access.Session) User {
	return User{
		ID:        s.Claims.UserID,
		Name:      s.Name,
		Email:     s.Email,
		UserType:  string(s.Claims.UserType),
		Role:      optional(string(s.Claims.Role)),
		DoctorID:  optional(s.Claims.DoctorID),
		PatientID: optional(s.Claims.PatientID),
	}
}

func ToLoginResponse(s access.Session) LoginResponse {
	return LoginResponse{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		ExpiresAt:   s.ExpiresAt,
		User:        ToResponseUser(s),
	}
}
