// Package constants provides shared constants used throughout rigmap.
// This includes timeouts, limits, file permissions and default paths that
// should be consistent across the CLI, the readers and the store.
package constants

import "time"

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// StoreConnectTimeout bounds opening and pinging the database
	StoreConnectTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxReportExamples is how many failing rows an ingest report keeps per error kind
	MaxReportExamples = 5

	// UpsertBatchSize is the number of radios written per INSERT statement
	UpsertBatchSize = 200

	// MaxModelLength is the longest model string accepted from any reader
	MaxModelLength = 128
)

// Path constants
const (
	// DefaultDatabasePath is the SQLite file used when no DSN is configured
	DefaultDatabasePath = "rigmap.db"

	// ConfigFileName is the config file looked up in $HOME and the working directory
	ConfigFileName = ".rigmap"
)

// Frequency band edges in MHz used when labelling FCC grant ranges
const (
	// HFUpperMHz is the first frequency that is no longer HF
	HFUpperMHz = 30.0

	// VHFUpperMHz is the first frequency that is no longer VHF
	VHFUpperMHz = 300.0

	// UHFUpperMHz is the first frequency that is no longer UHF
	UHFUpperMHz = 1000.0
)
