package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"laudos-api/internal/infrastructure/db/models"
)

// Migrate creates or widens the schema. It never drops columns, so it is safe
// against a restored backup.
func Migrate(ctx context.Context, logger *zap.Logger, d *Database) error {
	logger.Info("running database migrations", zap.String("driver", d.Driver()))

	if err := d.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("database migrated successfully")
	return nil
}
