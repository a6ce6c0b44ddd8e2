package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/tkaraev/go-progress-tracker/models"
)

func newTestJournalRepo(t *testing.T) (*journalRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	d, mock, db := newTestDB(t)
	repo := &journalRepository{
		db:     d,
		logger: d.logger,
	}
	return repo, mock, db
}

func testEntry(userID int64) models.DailyProgress {
	return models.DailyProgress{
		UserID: userID,
		Day:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local),
		Answers: models.DayAnswers{
			ShowUp:        "yes",
			LearnThing:    "sql transactions",
			FinishSmall:   "counter sweep",
			AvoidQuitting: "yes",
			IdeaDay:       "atomic sweeps",
			BibleStudy:    "psalm 1",
			Thoughts:      "solid day",
		},
	}
}

func TestRecordDay_Success(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	entry := testEntry(1)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO daily_progress").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(11, now))
	mock.ExpectExec("UPDATE counters").
		WithArgs(int64(10), "pages", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE counters").
		WithArgs(int64(1), "books", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := repo.RecordDay(context.Background(), entry, []models.CounterIncrement{
		{Name: "pages", Amount: 10},
		{Name: "books", Amount: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.EntryID != 11 {
		t.Errorf("expected EntryID=11, got %d", saved.EntryID)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordDay_NoSweep(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO daily_progress").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectCommit()

	_, err := repo.RecordDay(context.Background(), testEntry(1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordDay_AlreadyLogged(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO daily_progress").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.RecordDay(context.Background(), testEntry(1), nil)
	if !errors.Is(err, ErrAlreadyLogged) {
		t.Fatalf("expected ErrAlreadyLogged, got %v", err)
	}
}

func TestRecordDay_SweepCounterMissing_RollsBack(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO daily_progress").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectExec("UPDATE counters").
		WithArgs(int64(5), "missing", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.RecordDay(context.Background(), testEntry(1), []models.CounterIncrement{
		{Name: "missing", Amount: 5},
	})
	if !errors.Is(err, ErrCounterNotFound) {
		t.Fatalf("expected ErrCounterNotFound, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected rollback, got unmet expectations: %v", err)
	}
}

func TestRecordDay_BeginError(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("db is down"))

	_, err := repo.RecordDay(context.Background(), testEntry(1), nil)
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestRecordDay_CommitError(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO daily_progress").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	_, err := repo.RecordDay(context.Background(), testEntry(1), nil)
	if !errors.Is(err, ErrCommittingTransaction) {
		t.Fatalf("expected ErrCommittingTransaction, got %v", err)
	}
}

func TestListEntries_NewestFirst(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	d1 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"entry_id", "user_id", "day", "show_up", "learn_thing", "finish_small",
		"avoid_quitting", "idea_day", "bible_study", "thoughts", "created_at",
	}).
		AddRow(2, 1, d1, "yes", "a", "b", "yes", "c", "d", "e", now).
		AddRow(1, 1, d2, "no", "f", "g", "no", "h", "i", "j", now)

	mock.ExpectQuery("SELECT (.+) FROM daily_progress").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	entries, err := repo.ListEntries(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].Day.After(entries[1].Day) {
		t.Errorf("expected newest-first order, got %v then %v", entries[0].Day, entries[1].Day)
	}
	if entries[0].Answers.LearnThing != "a" {
		t.Errorf("expected answers scanned, got %+v", entries[0].Answers)
	}
}

func TestListEntries_Empty(t *testing.T) {
	repo, mock, db := newTestJournalRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM daily_progress").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"entry_id", "user_id", "day", "show_up", "learn_thing", "finish_small",
			"avoid_quitting", "idea_day", "bible_study", "thoughts", "created_at",
		}))

	entries, err := repo.ListEntries(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
