package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrUnsupportedDriver indicates a storage driver name outside the
	// supported set ("pgx", "sqlite3").
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)
