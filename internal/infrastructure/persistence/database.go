package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartbiz/backend/internal/infrastructure/config"
)

// Database wraps the gorm connection handle
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a postgres connection pool from configuration. Gorm's
// own query logging stays silent, request logging lives in the HTTP layer.
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return open(cfg, gormlogger.Silent)
}

// NewDatabaseWithLogger opens a connection with gorm query logging enabled,
// useful when debugging generated SQL locally
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, level gormlogger.LogLevel) (*Database, error) {
	return open(cfg, level)
}

func open(cfg *config.DatabaseConfig, level gormlogger.LogLevel) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(level),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close releases the underlying connection pool
func (d *Database) Close() error {
	pool, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	return pool.Close()
}

// Ping reports whether the database is reachable
func (d *Database) Ping() error {
	pool, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	return pool.Ping()
}

// ConnectionStats is a snapshot of the pool state for diagnostics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}

// Stats returns the current pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("access connection pool: %w", err)
	}
	s := pool.Stats()
	return ConnectionStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
	}, nil
}

// Transaction runs fn inside a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}
