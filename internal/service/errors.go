package service

import "errors"

// Sentinel errors returned by service methods. Callers should use
// [errors.Is] to match against these values; storage-level sentinels
// (e.g. store.ErrCounterExists) pass through wrapped.
var (
	// ErrInvalidDataProvided is returned when required input (username,
	// password, counter name) is empty after normalization.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthFailed is returned for both an unknown username and a wrong
	// password. The two cases are intentionally not distinguishable by the
	// caller.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidAmount is returned when a counter increment amount is
	// negative. Amount validation happens at this boundary, not inside the
	// counter registry.
	ErrInvalidAmount = errors.New("amount must be a non-negative integer")
)
