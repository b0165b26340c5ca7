package payledger

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Ingestion/combine completed (possibly with skipped rows/files)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied the table-reset approval
	ExitSourceDirError  = 14 // Input directory missing or unreadable
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultIngestTimeout bounds a whole run. Catastrophic failure
	// protection, not normal timeout control.
	DefaultIngestTimeout = 10 * time.Minute

	// SourceExtension is the only file extension considered by the scanner.
	// Matching is case-insensitive.
	SourceExtension = ".csv"

	// UnknownField is substituted for empty name, title and employer cells
	// rather than failing the row.
	UnknownField = "Unknown"

	// MinRowColumns is the minimum number of columns a data row must have:
	// four identity cells plus at least one pay cell. Shorter rows are
	// structurally invalid and skipped.
	MinRowColumns = 5
)
