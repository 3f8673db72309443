package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/patient"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/metrics"
)

// dummyHash is compared against when the email is unknown so both failure
// paths pay the same bcrypt cost.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("laudos-timing-equalizer"), bcrypt.DefaultCost)

type AuthService struct {
	userRepository    user.Repository
	doctorRepository  doctor.Repository
	patientRepository patient.Repository
	tokens            ports.Tokens
	mCounter          *prometheus.CounterVec
}

func NewAuthService(
	userRepository user.Repository,
	doctorRepository doctor.Repository,
	patientRepository patient.Repository,
	tokens ports.Tokens,
	mCounter *prometheus.CounterVec,
) ports.AuthService {
	return &AuthService{
		userRepository:    userRepository,
		doctorRepository:  doctorRepository,
		patientRepository: patientRepository,
		tokens:            tokens,
		mCounter:          mCounter,
	}
}

// Login checks the password before the active flag, so a disabled account is
// only revealed to someone who already knows its password.
func (as *AuthService) Login(ctx context.Context, email, password string) (*access.Session, error) {
	acc, err := as.userRepository.FetchAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if acc == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		as.mCounter.WithLabelValues(metrics.LoginFailed).Inc()
		return nil, apperr.ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		as.mCounter.WithLabelValues(metrics.LoginFailed).Inc()
		return nil, apperr.ErrInvalidCredentials
	}

	if !acc.Active() {
		as.mCounter.WithLabelValues(metrics.LoginDisabled).Inc()
		if acc.UserType == user.TypePatient {
			return nil, apperr.ErrPatientDisabled
		}
		return nil, apperr.ErrDoctorDisabled
	}

	claims := access.Claims{
		UserID:   acc.ID,
		UserType: acc.UserType,
	}
	if acc.DoctorID != nil {
		claims.DoctorID = *acc.DoctorID
		claims.Role = acc.Role
	}
	if acc.PatientID != nil {
		claims.PatientID = *acc.PatientID
	}

	token, exp, err := as.tokens.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	as.mCounter.WithLabelValues(metrics.LoginSuccess).Inc()

	return &access.Session{
		Token:     token,
		ExpiresAt: exp,
		Claims:    claims,
		Name:      acc.Name,
		Email:     acc.Email,
	}, nil
}

// Current resolves the display identity behind c from its profile.
func (as *AuthService) Current(ctx context.Context, c access.Claims) (*access.Session, error) {
	switch {
	case c.DoctorID != "":
		d, err := as.doctorRepository.FetchDoctorByID(ctx, c.DoctorID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, apperr.ErrUnauthenticated
		}
		return &access.Session{Claims: c, Name: d.Name, Email: d.Email}, nil

	case c.PatientID != "":
		p, err := as.patientRepository.FetchPatientByID(ctx, c.PatientID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.ErrUnauthenticated
		}
		return &access.Session{Claims: c, Name: p.Name, Email: p.Email}, nil
	}

	return &access.Session{Claims: c}, nil
}
