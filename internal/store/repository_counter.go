// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package store

import (
	"context"
	"fmt"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/models"
)

// counterRepository is the SQL-backed implementation of [CounterRepository].
// It keeps per-user named running totals in the "counters" table. Uniqueness
// of (user_id, name) is enforced by a database constraint, not a pre-check,
// so concurrent creators cannot slip a duplicate through.
type counterRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCounterRepository constructs a [CounterRepository] backed by the
// provided database connection and logger.
func NewCounterRepository(db *DB, logger *logger.Logger) CounterRepository {
	logger.Debug().Msg("creating counter repository")
	return &counterRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCounter inserts a new counter with total 0.
//
// Error handling:
//   - uniqueness violation on (user_id, name) → [ErrCounterExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *counterRepository) CreateCounter(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateCounterQuery(userID, name)
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.CreateCounter").Msg("error: building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassifier.IsUniqueViolation(err) {
			return ErrCounterExists
		}
		log.Err(err).Str("func", "*counterRepository.CreateCounter").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// EnsureCounter inserts a counter with total 0 only if it is absent.
// The INSERT carries ON CONFLICT DO NOTHING, so a second call is a no-op
// and an existing total is never touched.
func (r *counterRepository) EnsureCounter(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildEnsureCounterQuery(userID, name)
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.EnsureCounter").Msg("error: building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*counterRepository.EnsureCounter").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// IncrementCounter atomically adds amount to the counter's total in a single
// UPDATE.
//
// Error handling:
//   - zero rows affected → [ErrCounterNotFound]; nothing is mutated.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *counterRepository) IncrementCounter(ctx context.Context, userID int64, name string, amount int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildIncrementCounterQuery(userID, name, amount)
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.IncrementCounter").Msg("error: building query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.IncrementCounter").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.IncrementCounter").Msg("error: rows affected")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCounterNotFound
	}

	return nil
}

// ListCounters returns every counter of the user sorted by name ascending.
// An empty result is not an error.
func (r *counterRepository) ListCounters(ctx context.Context, userID int64) ([]models.Counter, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCountersQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.ListCounters").Msg("error: building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*counterRepository.ListCounters").Msg("error: executing query")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var counters []models.Counter
	for rows.Next() {
		var counter models.Counter
		if err = rows.Scan(&counter.CounterID, &counter.UserID, &counter.Name, &counter.Total); err != nil {
			log.Err(err).Str("func", "*counterRepository.ListCounters").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		counters = append(counters, counter)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*counterRepository.ListCounters").Msg("error: rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counters, nil
}
