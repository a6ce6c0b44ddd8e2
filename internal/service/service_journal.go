// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/store"
	"github.com/tkaraev/go-progress-tracker/models"
)

// journalService is the concrete implementation of [JournalService]. It
// stamps entries with the local calendar day and delegates the atomic
// entry-plus-sweep write to the journal repository.
type journalService struct {
	journalRepository store.JournalRepository
	counterRepository store.CounterRepository

	// now supplies the current time; swapped out in tests to pin the day.
	now func() time.Time

	logger *logger.Logger
}

// NewJournalService constructs a [JournalService] backed by the provided
// repositories and logger.
func NewJournalService(journalRepository store.JournalRepository, counterRepository store.CounterRepository, logger *logger.Logger) JournalService {
	logger.Debug().Msg("creating journal service")
	return &journalService{
		journalRepository: journalRepository,
		counterRepository: counterRepository,
		now:               time.Now,
		logger:            logger,
	}
}

// RecordDay logs today's journal entry together with the counter sweep.
//
// The entry day is the local calendar date at call time, so a user can log at
// most one entry per local day. The yes/no-style answers are lower-cased but
// otherwise stored as free text. Sweep counter names are normalized exactly
// like CounterService normalizes them; entries with an empty normalized name
// are rejected, as are negative amounts.
//
// The journal insert and every sweep increment are applied in a single
// transaction: either the whole day is recorded or nothing is.
//
// Returns the persisted entry or:
//   - ErrInvalidDataProvided if a sweep increment has an empty name.
//   - ErrInvalidAmount if a sweep increment has a negative amount.
//   - A wrapped storage error on repository failure (e.g.
//     store.ErrAlreadyLogged when today was already recorded, or
//     store.ErrCounterNotFound when a sweep targets a missing counter).
func (j *journalService) RecordDay(ctx context.Context, userID int64, answers models.DayAnswers, sweep []models.CounterIncrement) (models.DailyProgress, error) {
	log := logger.FromContext(ctx)

	answers.ShowUp = strings.ToLower(strings.TrimSpace(answers.ShowUp))
	answers.AvoidQuitting = strings.ToLower(strings.TrimSpace(answers.AvoidQuitting))

	increments := make([]models.CounterIncrement, 0, len(sweep))
	for _, increment := range sweep {
		increment.Name = normalizeCounterName(increment.Name)
		if increment.Name == "" {
			log.Error().Int64("user_id", userID).Msg("sweep increment with empty counter name")
			return models.DailyProgress{}, ErrInvalidDataProvided
		}
		if increment.Amount < 0 {
			log.Error().
				Int64("user_id", userID).
				Str("name", increment.Name).
				Int64("amount", increment.Amount).
				Msg("negative sweep amount rejected")
			return models.DailyProgress{}, ErrInvalidAmount
		}
		if increment.Amount == 0 {
			continue
		}
		increments = append(increments, increment)
	}

	day := j.now()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)

	entry := models.DailyProgress{
		UserID:  userID,
		Day:     day,
		Answers: answers,
	}

	recorded, err := j.journalRepository.RecordDay(ctx, entry, increments)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("recording daily progress ended with error")
		return models.DailyProgress{}, fmt.Errorf("recording daily progress ended with error: %w", err)
	}

	log.Debug().
		Int64("user_id", userID).
		Int64("entry_id", recorded.EntryID).
		Int("sweep_size", len(increments)).
		Msg("daily progress recorded")

	return recorded, nil
}

// Summary returns all counters and all journal entries of the user. Counters
// come back sorted by name ascending, entries newest day first.
func (j *journalService) Summary(ctx context.Context, userID int64) (models.Summary, error) {
	log := logger.FromContext(ctx)

	counters, err := j.counterRepository.ListCounters(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("counter listing ended with error")
		return models.Summary{}, fmt.Errorf("counter listing ended with error: %w", err)
	}

	entries, err := j.journalRepository.ListEntries(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("journal listing ended with error")
		return models.Summary{}, fmt.Errorf("journal listing ended with error: %w", err)
	}

	return models.Summary{
		Counters: counters,
		Entries:  entries,
	}, nil
}
