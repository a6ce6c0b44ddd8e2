package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tkaraev/go-progress-tracker/internal/config"
	"github.com/tkaraev/go-progress-tracker/internal/logger"
)

// schema for the local single-file mode. Mirrors the goose migrations used
// for PostgreSQL, including the uniqueness constraints the update rules rely
// on (username; (user_id, name); (user_id, day)).
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username        TEXT NOT NULL UNIQUE,
	password_digest TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS counters (
	counter_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	total      INTEGER NOT NULL DEFAULT 0,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS daily_progress (
	entry_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id        INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	day            DATE NOT NULL,
	show_up        TEXT NOT NULL DEFAULT '',
	learn_thing    TEXT NOT NULL DEFAULT '',
	finish_small   TEXT NOT NULL DEFAULT '',
	avoid_quitting TEXT NOT NULL DEFAULT '',
	idea_day       TEXT NOT NULL DEFAULT '',
	bible_study    TEXT NOT NULL DEFAULT '',
	thoughts       TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, day)
);
`

// NewConnectSQLite opens (creating if necessary) a local SQLite database
// file and bootstraps the schema.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", cfg.DSN+"?_foreign_keys=on")
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, sqliteSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error bootstrapping schema")
		return nil, fmt.Errorf("error bootstrapping schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:              conn,
		logger:          log,
		errorClassifier: NewSQLiteErrorClassifier(),
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
