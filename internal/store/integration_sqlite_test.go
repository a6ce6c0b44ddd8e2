// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tkaraev/go-progress-tracker/internal/config"
	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/models"
)

// newSQLiteStorages opens a throwaway single-file database in a temp dir so
// every repository runs against the real SQLite backend, constraints and all.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	cfg := config.Storage{DB: config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "tracker.db"),
	}}

	storages, err := NewStorages(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("opening sqlite storages: %v", err)
	}
	t.Cleanup(func() { storages.Close() })

	return storages
}

func mustCreateUser(t *testing.T, s *Storages, username string) models.User {
	t.Helper()

	user, err := s.UserRepository.CreateUser(context.Background(), models.User{
		Username:       username,
		PasswordDigest: "digest-" + username,
	})
	if err != nil {
		t.Fatalf("creating user %q: %v", username, err)
	}
	return user
}

func counterTotal(t *testing.T, s *Storages, userID int64, name string) int64 {
	t.Helper()

	counters, err := s.CounterRepository.ListCounters(context.Background(), userID)
	if err != nil {
		t.Fatalf("listing counters: %v", err)
	}
	for _, c := range counters {
		if c.Name == name {
			return c.Total
		}
	}
	t.Fatalf("counter %q not found", name)
	return 0
}

func localDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestSQLite_UserRoundTrip(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	created := mustCreateUser(t, storages, "marta")
	if created.UserID == 0 {
		t.Fatal("expected a server-assigned user id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected a server-assigned created_at")
	}

	found, err := storages.UserRepository.FindUserByUsername(ctx, "marta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != created.UserID || found.PasswordDigest != "digest-marta" {
		t.Fatalf("round trip mismatch: %+v", found)
	}

	_, err = storages.UserRepository.CreateUser(ctx, models.User{Username: "marta", PasswordDigest: "other"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, err = storages.UserRepository.FindUserByUsername(ctx, "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSQLite_CounterAccumulation(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()
	user := mustCreateUser(t, storages, "marta")

	if err := storages.CounterRepository.CreateCounter(ctx, user.UserID, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storages.CounterRepository.IncrementCounter(ctx, user.UserID, "pages", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storages.CounterRepository.IncrementCounter(ctx, user.UserID, "pages", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := counterTotal(t, storages, user.UserID, "pages"); got != 8 {
		t.Fatalf("expected total 8, got %d", got)
	}

	err := storages.CounterRepository.CreateCounter(ctx, user.UserID, "pages")
	if !errors.Is(err, ErrCounterExists) {
		t.Fatalf("expected ErrCounterExists, got %v", err)
	}

	// ensure is a no-op on an existing counter and must not reset the total
	if err = storages.CounterRepository.EnsureCounter(ctx, user.UserID, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := counterTotal(t, storages, user.UserID, "pages"); got != 8 {
		t.Fatalf("ensure reset the total: got %d", got)
	}

	if err = storages.CounterRepository.EnsureCounter(ctx, user.UserID, "bible chapters"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = storages.CounterRepository.IncrementCounter(ctx, user.UserID, "rowing", 1)
	if !errors.Is(err, ErrCounterNotFound) {
		t.Fatalf("expected ErrCounterNotFound, got %v", err)
	}

	counters, err := storages.CounterRepository.ListCounters(ctx, user.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counters) != 2 || counters[0].Name != "bible chapters" || counters[1].Name != "pages" {
		t.Fatalf("expected name-sorted [bible chapters, pages], got %+v", counters)
	}
}

func TestSQLite_RecordDayCommitsEntryAndSweepTogether(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()
	user := mustCreateUser(t, storages, "marta")

	if err := storages.CounterRepository.CreateCounter(ctx, user.UserID, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storages.CounterRepository.CreateCounter(ctx, user.UserID, "pushups"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := models.DailyProgress{
		UserID: user.UserID,
		Day:    localDay(2026, time.March, 14),
		Answers: models.DayAnswers{
			ShowUp:   "yes",
			Thoughts: "kept at it",
		},
	}
	sweep := []models.CounterIncrement{
		{Name: "pages", Amount: 10},
		{Name: "pushups", Amount: 30},
	}

	recorded, err := storages.JournalRepository.RecordDay(ctx, entry, sweep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.EntryID == 0 || recorded.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned fields, got %+v", recorded)
	}

	if got := counterTotal(t, storages, user.UserID, "pages"); got != 10 {
		t.Fatalf("expected pages total 10, got %d", got)
	}
	if got := counterTotal(t, storages, user.UserID, "pushups"); got != 30 {
		t.Fatalf("expected pushups total 30, got %d", got)
	}

	// same day again: rejected, and the sweep must not be re-applied
	_, err = storages.JournalRepository.RecordDay(ctx, entry, sweep)
	if !errors.Is(err, ErrAlreadyLogged) {
		t.Fatalf("expected ErrAlreadyLogged, got %v", err)
	}
	if got := counterTotal(t, storages, user.UserID, "pages"); got != 10 {
		t.Fatalf("rejected entry leaked increments: pages total %d", got)
	}
}

func TestSQLite_RecordDayRollsBackOnMissingCounter(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()
	user := mustCreateUser(t, storages, "marta")

	if err := storages.CounterRepository.CreateCounter(ctx, user.UserID, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := models.DailyProgress{
		UserID: user.UserID,
		Day:    localDay(2026, time.March, 14),
	}
	sweep := []models.CounterIncrement{
		{Name: "pages", Amount: 5},
		{Name: "rowing", Amount: 2},
	}

	_, err := storages.JournalRepository.RecordDay(ctx, entry, sweep)
	if !errors.Is(err, ErrCounterNotFound) {
		t.Fatalf("expected ErrCounterNotFound, got %v", err)
	}

	// the whole transaction rolled back: no entry, no partial increment
	entries, err := storages.JournalRepository.ListEntries(ctx, user.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after rollback, got %d", len(entries))
	}
	if got := counterTotal(t, storages, user.UserID, "pages"); got != 0 {
		t.Fatalf("expected pages total 0 after rollback, got %d", got)
	}
}

func TestSQLite_ListEntriesNewestFirst(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()
	user := mustCreateUser(t, storages, "marta")

	days := []time.Time{
		localDay(2026, time.March, 12),
		localDay(2026, time.March, 14),
		localDay(2026, time.March, 13),
	}
	for _, day := range days {
		_, err := storages.JournalRepository.RecordDay(ctx, models.DailyProgress{
			UserID: user.UserID,
			Day:    day,
		}, nil)
		if err != nil {
			t.Fatalf("recording %s: %v", day.Format("2006-01-02"), err)
		}
	}

	entries, err := storages.JournalRepository.ListEntries(ctx, user.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"2026-03-14", "2026-03-13", "2026-03-12"}
	for i, entry := range entries {
		if got := entry.Day.Format("2006-01-02"); got != want[i] {
			t.Fatalf("entry %d: expected day %s, got %s", i, want[i], got)
		}
	}
}
