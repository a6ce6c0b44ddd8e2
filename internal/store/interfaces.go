package store

import (
	"context"

	"github.com/tkaraev/go-progress-tracker/models"
)

// UserRepository persists user accounts and their password digests.
type UserRepository interface {
	// CreateUser inserts a new user and returns it with server-assigned
	// fields populated. Returns [ErrUsernameTaken] if the username is
	// already registered.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername looks up a user by exact username. Returns
	// [ErrUserNotFound] if no such user exists.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// CounterRepository persists per-user named counters. Name normalization is
// the caller's responsibility; the repository stores names verbatim.
type CounterRepository interface {
	// CreateCounter inserts a counter with total 0. Returns
	// [ErrCounterExists] if (userID, name) already exists.
	CreateCounter(ctx context.Context, userID int64, name string) error

	// EnsureCounter inserts a counter with total 0 if and only if it does
	// not already exist. Idempotent.
	EnsureCounter(ctx context.Context, userID int64, name string) error

	// IncrementCounter atomically adds amount to the counter's total.
	// Returns [ErrCounterNotFound] if no row was affected.
	IncrementCounter(ctx context.Context, userID int64, name string, amount int64) error

	// ListCounters returns all counters of the user, sorted by name
	// ascending.
	ListCounters(ctx context.Context, userID int64) ([]models.Counter, error)
}

// JournalRepository persists daily journal entries.
type JournalRepository interface {
	// RecordDay inserts the journal entry and applies all sweep increments
	// in a single transaction. Returns [ErrAlreadyLogged] if an entry for
	// (entry.UserID, entry.Day) already exists, or [ErrCounterNotFound] if
	// an increment targets a counter that does not exist; in either case
	// nothing is persisted.
	RecordDay(ctx context.Context, entry models.DailyProgress, increments []models.CounterIncrement) (models.DailyProgress, error)

	// ListEntries returns all journal entries of the user, newest day first.
	ListEntries(ctx context.Context, userID int64) ([]models.DailyProgress, error)
}

// ErrorClassifier translates driver-specific errors into storage-agnostic
// conditions so repositories never string-match driver messages.
type ErrorClassifier interface {
	// IsUniqueViolation reports whether err is a uniqueness constraint
	// violation (duplicate username, counter name, or journal day).
	IsUniqueViolation(err error) bool
}
