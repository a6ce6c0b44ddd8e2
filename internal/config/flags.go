package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN
//	-driver storage driver name ("pgx" or "sqlite3")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Storage driver (pgx or sqlite3)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
