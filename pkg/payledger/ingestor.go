package payledger

import "context"

// Ingestor is the main interface for executing ingestion runs.
// Implementations handle the full workflow: connection, table reset, file
// scanning, per-file normalization and load, most-recent recomputation, and
// the final summary.
type Ingestor interface {
	// Ingest executes a run using the provided configuration. Row- and
	// file-level problems are recovered locally (skip and log); the returned
	// error is non-nil only for run-fatal conditions such as an unreadable
	// source directory, invalid configuration, or connection failure.
	Ingest(ctx context.Context, config IngestConfig) (*RunSummary, error)
}
