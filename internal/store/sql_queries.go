package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tkaraev/go-progress-tracker/models"
)

// dateLayout is the wire format of the journal day column.
const dateLayout = "2006-01-02"

const (
	createUser = `INSERT INTO users (username, password_digest)
    VALUES ($1, $2)
    RETURNING user_id, username, password_digest, created_at;`

	findUserByUsername = `SELECT user_id, username, password_digest, created_at
    FROM users
    WHERE username = $1;`
)

// queryBuilder produces $N placeholders, valid for both the pgx and sqlite3
// drivers.
var queryBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildCreateCounterQuery(userID int64, name string) (string, []any, error) {
	query, args, err := queryBuilder.
		Insert("counters").
		Columns("user_id", "name", "total").
		Values(userID, name, 0).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildEnsureCounterQuery(userID int64, name string) (string, []any, error) {
	query, args, err := queryBuilder.
		Insert("counters").
		Columns("user_id", "name", "total").
		Values(userID, name, 0).
		Suffix("ON CONFLICT (user_id, name) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildIncrementCounterQuery(userID int64, name string, amount int64) (string, []any, error) {
	query, args, err := queryBuilder.
		Update("counters").
		Set("total", sq.Expr("total + ?", amount)).
		Where(sq.Eq{"user_id": userID, "name": name}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildListCountersQuery(userID int64) (string, []any, error) {
	query, args, err := queryBuilder.
		Select("counter_id", "user_id", "name", "total").
		From("counters").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertEntryQuery(entry models.DailyProgress) (string, []any, error) {
	query, args, err := queryBuilder.
		Insert("daily_progress").
		Columns(
			"user_id",
			"day",
			"show_up",
			"learn_thing",
			"finish_small",
			"avoid_quitting",
			"idea_day",
			"bible_study",
			"thoughts",
		).
		Values(
			entry.UserID,
			entry.Day.Format(dateLayout),
			entry.Answers.ShowUp,
			entry.Answers.LearnThing,
			entry.Answers.FinishSmall,
			entry.Answers.AvoidQuitting,
			entry.Answers.IdeaDay,
			entry.Answers.BibleStudy,
			entry.Answers.Thoughts,
		).
		Suffix("RETURNING entry_id, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildListEntriesQuery(userID int64) (string, []any, error) {
	query, args, err := queryBuilder.
		Select(
			"entry_id",
			"user_id",
			"day",
			"show_up",
			"learn_thing",
			"finish_small",
			"avoid_quitting",
			"idea_day",
			"bible_study",
			"thoughts",
			"created_at",
		).
		From("daily_progress").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("day DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
