package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/user"
)

func TestIssueAndValidate_Success(t *testing.T) {
	s := New("super-secret", time.Hour)
	in := access.Claims{
		UserID:   "u-123",
		UserType: user.TypeDoctor,
		Role:     user.RoleDoctorAdmin,
		DoctorID: "d-1",
	}

	tok, exp, err := s.Issue(in)
	require.NoError(t, err, "Issue should not error")
	require.NotEmpty(t, tok, "token must not be empty")
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	out, err := s.Validate(tok)
	require.NoError(t, err, "Validate should not error for fresh token")
	assert.Equal(t, in, out)
}

func TestValidate_Table(t *testing.T) {
	makeToken := func(secret string, ttl time.Duration) string {
		tok, _, err := New(secret, ttl).Issue(access.Claims{
			UserID:    "user-42",
			UserType:  user.TypePatient,
			PatientID: "p-9",
		})
		require.NoError(t, err)
		return tok
	}

	noneAlg := func() string {
		tok := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, Claims{
			RegisteredClaims: jwtv5.RegisteredClaims{Subject: "user-42"},
		})
		s, err := tok.SignedString(jwtv5.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		return s
	}

	noSubject := func() string {
		tok := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, Claims{
			UserType: "PATIENT",
			RegisteredClaims: jwtv5.RegisteredClaims{
				ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		s, err := tok.SignedString([]byte("k1"))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name    string
		secret  string
		token   string
		wantErr error
	}{
		{"valid token", "k1", makeToken("k1", 5*time.Minute), nil},
		{"invalid secret (signature mismatch)", "k2", makeToken("k1", 5*time.Minute), ErrInvalidToken},
		{"expired token", "k1", makeToken("k1", -1*time.Minute), ErrInvalidToken},
		{"malformed token string", "k1", "not-a-jwt", ErrInvalidToken},
		{"alg none rejected", "k1", noneAlg(), ErrInvalidToken},
		{"missing subject", "k1", noSubject(), ErrInvalidClaims},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			claims, err := New(tt.secret, time.Hour).Validate(tt.token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "user-42", claims.UserID)
				assert.Equal(t, user.TypePatient, claims.UserType)
				assert.Equal(t, "p-9", claims.PatientID)
				assert.True(t, claims.IsPatient())
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, access.Claims{}, claims)
		})
	}
}
