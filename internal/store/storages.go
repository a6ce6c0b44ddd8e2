package store

import (
	"context"
	"fmt"

	"github.com/tkaraev/go-progress-tracker/internal/config"
	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/migrations"
)

// Storages bundles all repositories behind a single constructor so the
// composition root wires the storage layer in one call.
type Storages struct {
	UserRepository    UserRepository
	CounterRepository CounterRepository
	JournalRepository JournalRepository

	db *DB
}

// NewStorages opens the database described by cfg, prepares the schema
// (goose migrations for PostgreSQL, inline bootstrap for SQLite) and
// constructs all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err = migrations.Migrate(db.DB); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.DB.Driver)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		CounterRepository: NewCounterRepository(db, log),
		JournalRepository: NewJournalRepository(db, log),
		db:                db,
	}, nil
}

// Close releases the shared database handle. Call once at process exit.
func (s *Storages) Close() error {
	return s.db.Close()
}
