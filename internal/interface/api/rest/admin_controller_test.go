package rest

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
)

func TestAdminController_DownloadDBHandler(t *testing.T) {
	file := filepath.Join(t.TempDir(), "laudos.db")
	require.NoError(t, os.WriteFile(file, []byte("SQLite format 3\x00"), 0o600))

	cleaned := false
	bs := &FakeBackupService{OpenBackupFunc: func(_ context.Context, c access.Claims) (*ports.Backup, error) {
		if !c.IsAdmin() {
			return nil, apperr.ErrForbidden
		}
		return &ports.Backup{
			Path:     file,
			Filename: "backup-2024-09-01T16-04-05.db",
			Size:     16,
			Cleanup:  func() { cleaned = true },
		}, nil
	}}

	ta := newTestAuth()
	r := newEngine()
	NewAdminController(r, bs, zap.NewNop(), ta.middleware())

	rr := doReq(t, r, http.MethodGet, RouteDownloadDB, nil, ta.header(t, doctorClaims))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doReq(t, r, http.MethodGet, RouteDownloadDB, nil, ta.header(t, adminClaims))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, backupContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "backup-2024-09-01T16-04-05.db")
	assert.Equal(t, "SQLite format 3\x00", rr.Body.String())
	assert.True(t, cleaned)
}

func TestAdminController_BackupMissing(t *testing.T) {
	bs := &FakeBackupService{OpenBackupFunc: func(context.Context, access.Claims) (*ports.Backup, error) {
		return nil, apperr.ErrBackupNotFound
	}}

	ta := newTestAuth()
	r := newEngine()
	NewAdminController(r, bs, zap.NewNop(), ta.middleware())

	rr := doReq(t, r, http.MethodGet, RouteDownloadDB, nil, ta.header(t, adminClaims))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "BACKUP_NOT_FOUND", decode(t, rr)["code"])
}
