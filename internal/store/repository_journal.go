// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package store

import (
	"context"
	"fmt"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/models"
)

// journalRepository is the SQL-backed implementation of [JournalRepository].
// Journal entries are append-only rows in "daily_progress", one per user per
// calendar day, enforced by the (user_id, day) uniqueness constraint.
type journalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewJournalRepository constructs a [JournalRepository] backed by the
// provided database connection and logger.
func NewJournalRepository(db *DB, logger *logger.Logger) JournalRepository {
	logger.Debug().Msg("creating journal repository")
	return &journalRepository{
		db:     db,
		logger: logger,
	}
}

// RecordDay persists the journal entry and applies the counter sweep in one
// transaction. The entry insert and every increment either all commit or all
// roll back; a crash mid-sweep can no longer leave partial counter updates
// applied.
//
// Error handling:
//   - uniqueness violation on (user_id, day) → [ErrAlreadyLogged].
//   - an increment affecting zero rows → [ErrCounterNotFound].
//   - commit failure → [ErrCommittingTransaction].
func (r *journalRepository) RecordDay(ctx context.Context, entry models.DailyProgress, increments []models.CounterIncrement) (models.DailyProgress, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.RecordDay").Msg("error: beginning transaction")
		return models.DailyProgress{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildInsertEntryQuery(entry)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.RecordDay").Msg("error: building query")
		return models.DailyProgress{}, err
	}

	// insert journal entry
	row := tx.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&entry.EntryID, &entry.CreatedAt); err != nil {
		if r.db.errorClassifier.IsUniqueViolation(err) {
			return models.DailyProgress{}, ErrAlreadyLogged
		}
		log.Err(err).Str("func", "*journalRepository.RecordDay").Msg("error: inserting entry")
		return models.DailyProgress{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// apply counter sweep
	for _, inc := range increments {
		query, args, err = buildIncrementCounterQuery(entry.UserID, inc.Name, inc.Amount)
		if err != nil {
			log.Err(err).Str("func", "*journalRepository.RecordDay").Msg("error: building increment query")
			return models.DailyProgress{}, err
		}

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "*journalRepository.RecordDay").Str("counter", inc.Name).Msg("error: applying increment")
			return models.DailyProgress{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, raErr := result.RowsAffected()
		if raErr != nil {
			log.Err(raErr).Str("func", "*journalRepository.RecordDay").Str("counter", inc.Name).Msg("error: rows affected")
			return models.DailyProgress{}, fmt.Errorf("%w: %w", ErrExecutingStatement, raErr)
		}
		if affected == 0 {
			return models.DailyProgress{}, ErrCounterNotFound
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*journalRepository.RecordDay").Msg("error: committing transaction")
		return models.DailyProgress{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return entry, nil
}

// ListEntries returns all journal entries of the user ordered by day
// descending.
func (r *journalRepository) ListEntries(ctx context.Context, userID int64) ([]models.DailyProgress, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.ListEntries").Msg("error: building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.ListEntries").Msg("error: executing query")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var entries []models.DailyProgress
	for rows.Next() {
		var entry models.DailyProgress
		if err = rows.Scan(
			&entry.EntryID,
			&entry.UserID,
			&entry.Day,
			&entry.Answers.ShowUp,
			&entry.Answers.LearnThing,
			&entry.Answers.FinishSmall,
			&entry.Answers.AvoidQuitting,
			&entry.Answers.IdeaDay,
			&entry.Answers.BibleStudy,
			&entry.Answers.Thoughts,
			&entry.CreatedAt,
		); err != nil {
			log.Err(err).Str("func", "*journalRepository.ListEntries").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*journalRepository.ListEntries").Msg("error: rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
