// Package config contains compile-time defaults for classdb.
// Runtime overrides come from classdb.yaml, .env, CLASSDB_* variables and flags.
package config

import "time"

// =============================================================================
// DATABASE DEFAULTS
// =============================================================================

const (
	// DBDriver is the database driver to use (sqlite3 or mysql)
	DBDriver = "sqlite3"

	// DBMaxOpenConns is maximum open connections in the pool.
	// SQLite pools are always clamped to one connection.
	DBMaxOpenConns = 1

	// DBMaxIdleConns is maximum idle connections in the pool
	DBMaxIdleConns = 1

	// DBConnMaxLifetime is how long a connection can be reused (0 = forever)
	DBConnMaxLifetime = 0

	// DBBusyTimeout is how long SQLite waits on a locked database file
	DBBusyTimeout = 5 * time.Second

	// DBFileExtension is appended to exercise names to build database file names
	DBFileExtension = ".db"
)

// =============================================================================
// FILE LOCATIONS
// =============================================================================

const (
	// DataDir is where exercise database files are created
	DataDir = "./data"

	// ExportPath is the default file for saved report results
	ExportPath = "results.txt"

	// ExportFormat is the default export format (text or csv)
	ExportFormat = "text"

	// ConfigName is the base name of the optional config file (classdb.yaml)
	ConfigName = "classdb"

	// EnvPrefix prefixes every environment variable override
	EnvPrefix = "CLASSDB"
)

// =============================================================================
// EXECUTION
// =============================================================================

const (
	// QueryTimeout bounds a single exercise step or report query
	QueryTimeout = 30 * time.Second

	// LogLevel is the loggo configuration applied when --verbose is not set
	LogLevel = "<root>=WARNING"

	// VerboseLogLevel is the loggo configuration applied with --verbose
	VerboseLogLevel = "<root>=DEBUG"
)

// =============================================================================
// HOSPITAL TEST DATA
// =============================================================================

const (
	// RandomExaminations is how many extra examinations "hospital seed --random" adds
	RandomExaminations = 20

	// RandomSeed is the default seed for generated examinations (0 = random)
	RandomSeed = 0
)
