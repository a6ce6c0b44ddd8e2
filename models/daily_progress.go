package models

import "time"

// DayAnswers holds the free-text answers to the fixed set of daily prompts.
// The boolean-ish fields (ShowUp, AvoidQuitting) are stored as lowercased
// free text; intended values are "yes"/"no" but are not enforced.
type DayAnswers struct {
	ShowUp        string
	LearnThing    string
	FinishSmall   string
	AvoidQuitting string
	IdeaDay       string
	BibleStudy    string
	Thoughts      string
}

// DailyProgress is a single journal entry: one record per user per calendar
// day. Entries are append-only; no field is editable after creation.
type DailyProgress struct {
	// EntryID is the internal unique identifier of the entry.
	EntryID int64 `json:"-"`

	// UserID is the identifier of the owning user.
	UserID int64 `json:"-"`

	// Day is the local calendar date the entry was recorded for.
	// (UserID, Day) is unique.
	Day time.Time `json:"day"`

	// Answers are the free-text reflections for the day.
	Answers DayAnswers `json:"answers"`

	// CreatedAt is the timestamp when the entry was persisted.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the DailyProgress model.
func (d DailyProgress) TableName() string {
	return "daily_progress"
}

// Summary aggregates everything shown on the progress summary screen:
// all counters sorted by name and all journal entries, newest first.
type Summary struct {
	Counters []Counter
	Entries  []DailyProgress
}
