package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/infrastructure/metrics"
)

const backupNameLayout = "2006-01-02T15-04-05"

type BackupService struct {
	file        string
	snapshotter ports.Snapshotter
	logger      *zap.Logger
	mCounter    *prometheus.CounterVec
	now         func() time.Time
}

// NewBackupService serves file as is when snapshotter is nil.
func NewBackupService(
	file string,
	snapshotter ports.Snapshotter,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.BackupService {
	return &BackupService{
		file:        file,
		snapshotter: snapshotter,
		logger:      logger,
		mCounter:    mCounter,
		now:         time.Now,
	}
}

func (bs *BackupService) OpenBackup(ctx context.Context, c access.Claims) (*ports.Backup, error) {
	if !access.Resolve(c, access.ResourceBackup, access.Owner{}).Has(access.OpDownload) {
		return nil, apperr.ErrForbidden
	}

	if _, err := os.Stat(bs.file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrBackupNotFound
		}
		return nil, fmt.Errorf("stat backup: %w", err)
	}

	b := &ports.Backup{
		Path:     bs.file,
		Filename: "backup-" + bs.now().UTC().Format(backupNameLayout) + ".db",
		Cleanup:  func() {},
	}

	if bs.snapshotter != nil {
		dir, err := os.MkdirTemp("", "laudos-backup-*")
		if err != nil {
			return nil, fmt.Errorf("snapshot dir: %w", err)
		}
		dst := filepath.Join(dir, b.Filename)
		if err = bs.snapshotter.Snapshot(ctx, dst); err != nil {
			_ = os.RemoveAll(dir)
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		b.Path = dst
		b.Cleanup = func() {
			if err := os.RemoveAll(dir); err != nil {
				bs.logger.Warn("backup cleanup failed", zap.String("dir", dir), zap.Error(err))
			}
		}
	}

	info, err := os.Stat(b.Path)
	if err != nil {
		b.Cleanup()
		return nil, fmt.Errorf("stat backup: %w", err)
	}
	b.Size = info.Size()

	bs.mCounter.WithLabelValues(metrics.BackupDownloaded).Inc()
	bs.logger.Info("backup exported",
		zap.String("user_id", c.UserID),
		zap.String("filename", b.Filename),
		zap.Int64("size", b.Size),
	)

	return b, nil
}
