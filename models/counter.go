package models

// Counter is a named, per-user running total. The registry has no semantic
// knowledge of what a counter measures; it only keeps name and total.
type Counter struct {
	// CounterID is the internal unique identifier of the counter.
	CounterID int64 `json:"-"`

	// UserID is the identifier of the owning user. Every counter belongs
	// to exactly one user.
	UserID int64 `json:"-"`

	// Name is the counter name, lower-cased and trimmed before storage.
	// (UserID, Name) is unique.
	Name string `json:"name"`

	// Total is the accumulated value. It only ever grows: counters are
	// incremented by non-negative amounts and never decremented.
	Total int64 `json:"total"`
}

// TableName returns the name of the database table
// associated with the Counter model.
func (c Counter) TableName() string {
	return "counters"
}

// CounterIncrement is a single pending addition to a named counter,
// collected during the post-journal sweep and applied together with the
// journal entry in one transaction.
type CounterIncrement struct {
	Name   string
	Amount int64
}
