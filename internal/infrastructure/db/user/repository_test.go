package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db/dbtest"
	"laudos-api/internal/infrastructure/db/models"
)

func TestRepository_FetchAccountByEmail(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	repo := NewRepository(d)

	docID := dbtest.SeedDoctor(t, d, "Admin", "admin@medical.com", "12345-SP", "DOCTOR_ADMIN")
	patID := dbtest.SeedPatient(t, d, docID, "Maria", "maria@x.org", "11111111111")
	require.NoError(t, d.Model(&models.Patient{}).Where(map[string]any{"id": patID}).Update("active", false).Error)

	doc, err := repo.FetchAccountByEmail(ctx, "admin@medical.com")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, domain.TypeDoctor, doc.UserType)
	require.NotNil(t, doc.DoctorID)
	assert.Equal(t, docID, *doc.DoctorID)
	assert.Equal(t, domain.RoleDoctorAdmin, doc.Role)
	assert.True(t, doc.Active())
	assert.Equal(t, "x", doc.PasswordHash)

	pat, err := repo.FetchAccountByEmail(ctx, "maria@x.org")
	require.NoError(t, err)
	require.NotNil(t, pat)
	assert.Equal(t, domain.TypePatient, pat.UserType)
	require.NotNil(t, pat.PatientID)
	assert.Equal(t, patID, *pat.PatientID)
	assert.Nil(t, pat.DoctorID)
	assert.False(t, pat.Active())

	none, err := repo.FetchAccountByEmail(ctx, "ghost@x.org")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRepository_FetchAccountByEmail_IgnoresCase(t *testing.T) {
	ctx := context.Background()
	d := dbtest.Open(t)
	repo := NewRepository(d)

	docID := dbtest.SeedDoctor(t, d, "Legacy", "Legacy.Doc@Medical.com", "22222-SP", "DOCTOR")

	for _, email := range []string{"Legacy.Doc@Medical.com", "legacy.doc@medical.com", "LEGACY.DOC@MEDICAL.COM"} {
		acc, err := repo.FetchAccountByEmail(ctx, email)
		require.NoError(t, err, email)
		require.NotNil(t, acc, email)
		require.NotNil(t, acc.DoctorID)
		assert.Equal(t, docID, *acc.DoctorID)
	}
}
