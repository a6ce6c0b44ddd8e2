package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/store"
	"github.com/tkaraev/go-progress-tracker/models"
)

// counterService is the concrete implementation of [CounterService]. The
// registry has no semantic knowledge of what counters measure; it only
// normalizes names, validates amounts, and delegates bookkeeping to the
// repository.
type counterService struct {
	counterRepository store.CounterRepository

	logger *logger.Logger
}

// NewCounterService constructs a [CounterService] backed by the provided
// repository and logger.
func NewCounterService(counterRepository store.CounterRepository, logger *logger.Logger) CounterService {
	logger.Debug().Msg("creating counter service")
	return &counterService{
		counterRepository: counterRepository,
		logger:            logger,
	}
}

// normalizeCounterName trims and lower-cases a counter name. Uniqueness of
// counter names is case-insensitive because every name passes through here
// before reaching storage.
func normalizeCounterName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create registers a new counter with total 0 for the user.
//
// Returns:
//   - ErrInvalidDataProvided if the name is empty after normalization.
//   - A wrapped storage error on repository failure (e.g.
//     store.ErrCounterExists for a duplicate name).
func (c *counterService) Create(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	name = normalizeCounterName(name)
	if name == "" {
		log.Error().Int64("user_id", userID).Msg("invalid counter name provided")
		return ErrInvalidDataProvided
	}

	if err := c.counterRepository.CreateCounter(ctx, userID, name); err != nil {
		log.Err(err).Int64("user_id", userID).Str("name", name).Msg("counter creation ended with error")
		return fmt.Errorf("counter creation ended with error: %w", err)
	}

	return nil
}

// Ensure creates the counter with total 0 if and only if it does not already
// exist for that user. Calling it twice leaves exactly one row with the total
// untouched by the second call.
func (c *counterService) Ensure(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	name = normalizeCounterName(name)
	if name == "" {
		log.Error().Int64("user_id", userID).Msg("invalid counter name provided")
		return ErrInvalidDataProvided
	}

	if err := c.counterRepository.EnsureCounter(ctx, userID, name); err != nil {
		log.Err(err).Int64("user_id", userID).Str("name", name).Msg("counter ensure ended with error")
		return fmt.Errorf("counter ensure ended with error: %w", err)
	}

	return nil
}

// Increment adds amount to the counter's total.
//
// Returns:
//   - ErrInvalidDataProvided if the name is empty after normalization.
//   - ErrInvalidAmount if amount is negative; the registry itself never
//     sees invalid amounts.
//   - A wrapped storage error on repository failure (e.g.
//     store.ErrCounterNotFound when the counter does not exist).
func (c *counterService) Increment(ctx context.Context, userID int64, name string, amount int64) error {
	log := logger.FromContext(ctx)

	name = normalizeCounterName(name)
	if name == "" {
		log.Error().Int64("user_id", userID).Msg("invalid counter name provided")
		return ErrInvalidDataProvided
	}
	if amount < 0 {
		log.Error().Int64("user_id", userID).Str("name", name).Int64("amount", amount).Msg("negative amount rejected")
		return ErrInvalidAmount
	}

	if err := c.counterRepository.IncrementCounter(ctx, userID, name, amount); err != nil {
		log.Err(err).Int64("user_id", userID).Str("name", name).Msg("counter increment ended with error")
		return fmt.Errorf("counter increment ended with error: %w", err)
	}

	return nil
}

// List returns all counters of the user sorted by name ascending.
func (c *counterService) List(ctx context.Context, userID int64) ([]models.Counter, error) {
	log := logger.FromContext(ctx)

	counters, err := c.counterRepository.ListCounters(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("counter listing ended with error")
		return nil, fmt.Errorf("counter listing ended with error: %w", err)
	}

	return counters, nil
}
