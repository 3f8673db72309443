package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/user"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

type Service struct {
	jwtSecret string
	ttl       time.Duration
	now       func() time.Time
}

func New(jwtSecret string, ttl time.Duration) *Service {
	return &Service{jwtSecret: jwtSecret, ttl: ttl, now: time.Now}
}

type Claims struct {
	UserType  string `json:"user_type"`
	Role      string `json:"role,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
	PatientID string `json:"patient_id,omitempty"`
	jwt.RegisteredClaims
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs c for the configured validity window.
func (s *Service) Issue(c access.Claims) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	claims := Claims{
		UserType:  string(c.UserType),
		Role:      string(c.Role),
		DoctorID:  c.DoctorID,
		PatientID: c.PatientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *Service) Validate(tokenStr string) (access.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return access.Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return access.Claims{}, ErrInvalidClaims
	}

	return access.Claims{
		UserID:    claims.Subject,
		UserType:  user.Type(claims.UserType),
		Role:      user.Role(claims.Role),
		DoctorID:  claims.DoctorID,
		PatientID: claims.PatientID,
	}, nil
}
