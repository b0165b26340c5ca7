package payledger

import (
	"context"
	"time"
)

// Store is the storage session for one ingestion run. It owns the connection
// pool for the duration of the run and is released with Close. Implementations
// are NOT safe for concurrent use; the orchestrator is the only writer.
type Store interface {
	// EnsureSchema creates the Person, Salary and DataFiles tables and their
	// indexes if they do not exist.
	EnsureSchema(ctx context.Context) error

	// Reset truncates all three tables and restarts their identifier
	// sequences. Destructive; callers gate it behind an Approver.
	Reset(ctx context.Context) error

	// Begin opens the unit of work for a single file. All Person and Salary
	// writes for the file happen inside it and become visible only on Commit.
	Begin(ctx context.Context) (FileBatch, error)

	// RecomputeMostRecent runs the authoritative pass that points every
	// Person's most-recent title, employer and date at its max-date Salary
	// row. Returns the number of Person rows updated.
	RecomputeMostRecent(ctx context.Context) (int64, error)

	// Counts reports the current number of Person and Salary rows.
	Counts(ctx context.Context) (people int64, salaries int64, err error)

	// Close releases the underlying pool. Idempotent.
	Close()
}

// FileBatch is the transactional unit of work for one file. A mid-file
// failure rolls the whole batch back, leaving zero partial Salary rows.
type FileBatch interface {
	// ResolvePerson finds or creates the canonical Person for the record's
	// case-folded (first, last) pair. New people are seeded with the
	// record's title/employer/date as most-recent. Returns the person ID and
	// whether a new Person row was created.
	ResolvePerson(ctx context.Context, rec PayRecord, recordDate *time.Time) (int64, bool, error)

	// AddSalary appends one immutable Salary observation for the person,
	// then advances the person's most-recent fields if recordDate is the
	// newest seen so far.
	AddSalary(ctx context.Context, personID int64, rec PayRecord, recordDate *time.Time, sourceFile string) error

	// RecordFile writes the DataFiles ledger entry for the file.
	RecordFile(ctx context.Context, report FileReport) error

	// Commit makes the file's writes durable.
	Commit(ctx context.Context) error

	// Rollback discards the file's writes. Safe to call after Commit.
	Rollback(ctx context.Context) error
}
