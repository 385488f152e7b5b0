// Package sqlx backs the KV interface with a relational database through
// jmoiron/sqlx. Postgres and MySQL are supported.
package sqlx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Driver selects the SQL dialect.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Config holds SQL connection configuration.
type Config struct {
	Driver          Driver        `json:"driver"`
	DSN             string        `json:"dsn"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

// DefaultConfig returns sensible defaults for the given driver.
func DefaultConfig(driver Driver) Config {
	return Config{
		Driver:          driver,
		DSN:             "",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// Store implements the engine.KV interface over a greenkit_kv table:
//
//	CREATE TABLE greenkit_kv (
//	    kv_key     VARCHAR(255) PRIMARY KEY,
//	    kv_value   TEXT NOT NULL,
//	    updated_at TIMESTAMP NOT NULL
//	)
type Store struct {
	db     *sqlx.DB
	driver Driver
}

// New opens a connection pool and verifies connectivity.
func New(config Config) (*Store, error) {
	if config.DSN == "" {
		return nil, errors.New("sql storage requires a DSN")
	}
	db, err := sqlx.Connect(string(config.Driver), config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Driver, err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	return &Store{db: db, driver: config.Driver}, nil
}

// NewWithDB wraps an existing database handle (useful for testing).
func NewWithDB(db *sqlx.DB, driver Driver) *Store {
	return &Store{db: db, driver: driver}
}

// Close closes the underlying pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query := s.db.Rebind("SELECT kv_value FROM greenkit_kv WHERE kv_key = ?")
	var value string
	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sql get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	var query string
	switch s.driver {
	case DriverMySQL:
		query = "INSERT INTO greenkit_kv (kv_key, kv_value, updated_at) VALUES (?, ?, ?) " +
			"ON DUPLICATE KEY UPDATE kv_value = VALUES(kv_value), updated_at = VALUES(updated_at)"
	default:
		query = s.db.Rebind("INSERT INTO greenkit_kv (kv_key, kv_value, updated_at) VALUES (?, ?, ?) " +
			"ON CONFLICT (kv_key) DO UPDATE SET kv_value = EXCLUDED.kv_value, updated_at = EXCLUDED.updated_at")
	}
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("sql set %s: %w", key, err)
	}
	return nil
}
