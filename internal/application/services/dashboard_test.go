package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
)

func menuKeys(items []ports.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key)
	}
	return out
}

func TestDashboardService_Overview(t *testing.T) {
	e := newEnv(t)
	ts := seedTenants(t, e)
	ctx := context.Background()

	_, err := e.laudos.CreateLaudo(ctx, ts.docA, newLaudo(ts.patientOfA.ID))
	require.NoError(t, err)

	tests := []struct {
		name     string
		claims   access.Claims
		keys     []string
		patients *int64
		laudos   int64
	}{
		{
			name:     "admin",
			claims:   ts.admin,
			keys:     []string{"dashboard", "patients", "laudos", "manage-patients", "manage-doctors", "admin-backup", "logout"},
			patients: ptr(int64(1)),
			laudos:   1,
		},
		{
			name:     "owning doctor",
			claims:   ts.docA,
			keys:     []string{"dashboard", "patients", "laudos", "manage-patients", "logout"},
			patients: ptr(int64(1)),
			laudos:   1,
		},
		{
			name:     "other doctor",
			claims:   ts.docB,
			keys:     []string{"dashboard", "patients", "laudos", "manage-patients", "logout"},
			patients: ptr(int64(0)),
			laudos:   0,
		},
		{
			name:   "patient",
			claims: patientClaims(ts.patientOfA.ID),
			keys:   []string{"dashboard", "laudos", "logout"},
			laudos: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.dashboard.Overview(ctx, tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, menuKeys(d.Menu))
			assert.Equal(t, tt.patients, d.PatientCount)
			assert.Equal(t, tt.laudos, d.LaudoCount)
		})
	}

	_, err = e.dashboard.Overview(ctx, access.Claims{})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func ptr[T any](v T) *T { return &v }
