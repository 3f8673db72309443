package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"laudos-api/config"
)

// Database is the shared ORM handle plus whatever must be closed with it.
type Database struct {
	*gorm.DB

	driver string
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
}

func New(ctx context.Context, logger *zap.Logger, cfg config.Config) (*Database, error) {
	gcfg := &gorm.Config{Logger: NewLogger(logger)}

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		dsn, err := cfg.DBDSN()
		if err != nil {
			return nil, err
		}
		return openPostgres(ctx, logger, dsn, cfg.DB.MaxConns, gcfg)
	case config.DriverSQLite:
		return openSQLite(ctx, logger, cfg.DB.Path, gcfg)
	}

	return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
}

func openPostgres(ctx context.Context, logger *zap.Logger, dsn string, maxConns int32, gcfg *gorm.Config) (*Database, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("gorm open postgres: %w", err)
	}

	logger.Info("db connected successfully", zap.String("driver", config.DriverPostgres))

	return &Database{DB: gdb, driver: config.DriverPostgres, sqlDB: sqlDB, pool: pool}, nil
}

func openSQLite(ctx context.Context, logger *zap.Logger, path string, gcfg *gorm.Config) (*Database, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), gcfg)
	if err != nil {
		return nil, fmt.Errorf("gorm open sqlite: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// one writer; busy_timeout covers readers racing it
	sqlDB.SetMaxOpenConns(1)
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	logger.Info("db connected successfully", zap.String("driver", config.DriverSQLite), zap.String("path", path))

	return &Database{DB: gdb, driver: config.DriverSQLite, sqlDB: sqlDB}, nil
}

// SQLiteDSN enables foreign keys and a busy timeout on every pooled connection.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (d *Database) Driver() string { return d.driver }

func (d *Database) Ping(ctx context.Context) error {
	if d.sqlDB == nil {
		return fmt.Errorf("db not initialized")
	}
	return d.sqlDB.PingContext(ctx)
}

func (d *Database) Close() {
	if d.sqlDB != nil {
		_ = d.sqlDB.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// Wrap adopts an already opened handle, used by tests and tools.
func Wrap(gdb *gorm.DB, driver string) (*Database, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Database{DB: gdb, driver: driver, sqlDB: sqlDB}, nil
}

// Snapshot writes a consistent copy of a SQLite database to dst.
func (d *Database) Snapshot(ctx context.Context, dst string) error {
	if d.driver != config.DriverSQLite {
		return fmt.Errorf("snapshot not supported for driver %q", d.driver)
	}
	return d.WithContext(ctx).Exec("VACUUM INTO ?", dst).Error
}
