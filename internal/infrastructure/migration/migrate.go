package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator wraps golang-migrate with logging
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New creates a Migrator over an open postgres connection reading SQL files
// from migrationsPath
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// NewFromURL creates a Migrator connecting on its own from a database URL
func NewFromURL(databaseURL, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}
	return &Migrator{m: m, logger: logger}, nil
}

// Up applies all pending migrations
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, _ := mg.m.Version()
	mg.logger.Info("migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back every migration
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info("nothing to roll back")
			return nil
		}
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.logger.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations, rolling back when n is negative
func (mg *Migrator) Steps(n int) error {
	if err := mg.m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate steps(%d): %w", n, err)
	}
	return nil
}

// Version reports the current schema version. A fresh database reports
// version 0 and no error.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version to recover from a dirty state
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}
