package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
)

func newTestCounterRepo(t *testing.T) (*counterRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	d, mock, db := newTestDB(t)
	repo := &counterRepository{
		db:     d,
		logger: d.logger,
	}
	return repo, mock, db
}

func TestCreateCounter_Success(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO counters").
		WithArgs(int64(1), "pages", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateCounter(context.Background(), 1, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateCounter_AlreadyExists(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO counters").
		WithArgs(int64(1), "pages", 0).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.CreateCounter(context.Background(), 1, "pages")
	if !errors.Is(err, ErrCounterExists) {
		t.Fatalf("expected ErrCounterExists, got %v", err)
	}
}

func TestCreateCounter_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO counters").
		WithArgs(int64(1), "pages", 0).
		WillReturnError(errors.New("db network error"))

	err := repo.CreateCounter(context.Background(), 1, "pages")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestEnsureCounter_CreatesWhenAbsent(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO counters").
		WithArgs(int64(1), "pages", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.EnsureCounter(context.Background(), 1, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureCounter_NoOpWhenPresent(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	// ON CONFLICT DO NOTHING: zero rows affected, still no error
	mock.ExpectExec("INSERT INTO counters").
		WithArgs(int64(1), "pages", 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureCounter(context.Background(), 1, "pages"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrementCounter_Success(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE counters").
		WithArgs(int64(5), "pages", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementCounter(context.Background(), 1, "pages", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrementCounter_NotFound(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE counters").
		WithArgs(int64(5), "missing", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementCounter(context.Background(), 1, "missing", 5)
	if !errors.Is(err, ErrCounterNotFound) {
		t.Fatalf("expected ErrCounterNotFound, got %v", err)
	}
}

func TestIncrementCounter_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE counters").
		WithArgs(int64(5), "pages", int64(1)).
		WillReturnError(errors.New("db network error"))

	err := repo.IncrementCounter(context.Background(), 1, "pages", 5)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestListCounters_OrderedByName(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"counter_id", "user_id", "name", "total"}).
		AddRow(2, 1, "books", 3).
		AddRow(1, 1, "pages", 120)

	mock.ExpectQuery("SELECT (.+) FROM counters").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	counters, err := repo.ListCounters(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counters) != 2 {
		t.Fatalf("expected 2 counters, got %d", len(counters))
	}
	if counters[0].Name != "books" || counters[1].Name != "pages" {
		t.Errorf("expected name-ordered result, got %v", counters)
	}
	if counters[1].Total != 120 {
		t.Errorf("expected total 120, got %d", counters[1].Total)
	}
}

func TestListCounters_Empty(t *testing.T) {
	repo, mock, db := newTestCounterRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM counters").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"counter_id", "user_id", "name", "total"}))

	counters, err := repo.ListCounters(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counters) != 0 {
		t.Fatalf("expected no counters, got %d", len(counters))
	}
}
