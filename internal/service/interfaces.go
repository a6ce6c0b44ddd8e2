package service

import (
	"context"

	"github.com/tkaraev/go-progress-tracker/models"
)

// AuthService handles account registration and credential verification.
type AuthService interface {
	// RegisterUser creates a new account. The password is digested with a
	// slow salt-randomized hash before storage; plaintext is never
	// persisted.
	RegisterUser(ctx context.Context, username, password string) (models.User, error)

	// Login verifies credentials. Unknown username and wrong password are
	// deliberately indistinguishable: both return [ErrAuthFailed].
	Login(ctx context.Context, username, password string) (models.User, error)
}

// CounterService manages the user's named accumulators. Counter names are
// case-insensitive: they are trimmed and lower-cased at this boundary before
// any storage call.
type CounterService interface {
	// Create registers a new counter with total 0.
	Create(ctx context.Context, userID int64, name string) error

	// Ensure creates the counter if and only if it does not exist yet.
	Ensure(ctx context.Context, userID int64, name string) error

	// Increment adds a non-negative amount to the counter's total.
	// Negative amounts are rejected with [ErrInvalidAmount] before any
	// storage call.
	Increment(ctx context.Context, userID int64, name string, amount int64) error

	// List returns the user's counters sorted by name ascending.
	List(ctx context.Context, userID int64) ([]models.Counter, error)
}

// JournalService manages daily journal entries and the summary view.
type JournalService interface {
	// RecordDay logs today's journal entry together with the counter
	// sweep. The entry and all sweep increments are applied atomically.
	RecordDay(ctx context.Context, userID int64, answers models.DayAnswers, sweep []models.CounterIncrement) (models.DailyProgress, error)

	// Summary returns all counters and all journal entries of the user,
	// entries newest first.
	Summary(ctx context.Context, userID int64) (models.Summary, error)
}
