package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kwhalen-data/payledger/internal/identity"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// Compile-time interface checks.
var (
	_ payledger.Store     = (*PostgresStore)(nil)
	_ payledger.FileBatch = (*fileBatch)(nil)
)

// PostgresStore implements payledger.Store on top of a pgx connection pool.
//
// Thread-Safety: NOT safe for concurrent use. Ingestion is a single
// sequential writer; only Close is guarded for double calls.
type PostgresStore struct {
	pool      *pgxpool.Pool
	closeOnce sync.Once
}

// NewPostgresStore creates a store over an established pool. The store takes
// ownership of the pool and closes it in Close.
// Panics if pool is nil.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the three tables and their indexes if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, ddl := range []string{ddlPerson, ddlSalary, ddlDataFiles} {
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	for _, ddl := range ddlIndexes {
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Reset truncates all three tables and restarts their identifier sequences.
func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, queryTruncateAll); err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}
	return nil
}

// Begin opens the transaction for one file's writes.
func (s *PostgresStore) Begin(ctx context.Context) (payledger.FileBatch, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin file transaction: %w", err)
	}
	return &fileBatch{tx: tx}, nil
}

// RecomputeMostRecent runs the authoritative most-recent pass.
func (s *PostgresStore) RecomputeMostRecent(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, queryRecomputeMostRecent)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute most-recent fields: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Counts reports the current number of person and salary rows.
func (s *PostgresStore) Counts(ctx context.Context) (int64, int64, error) {
	var people, salaries int64
	if err := s.pool.QueryRow(ctx, queryCountPeople).Scan(&people); err != nil {
		return 0, 0, fmt.Errorf("failed to count people: %w", err)
	}
	if err := s.pool.QueryRow(ctx, queryCountSalaries).Scan(&salaries); err != nil {
		return 0, 0, fmt.Errorf("failed to count salaries: %w", err)
	}
	return people, salaries, nil
}

// Close releases the pool. Idempotent.
func (s *PostgresStore) Close() {
	s.closeOnce.Do(func() {
		s.pool.Close()
	})
}

// fileBatch implements payledger.FileBatch over a single pgx transaction.
type fileBatch struct {
	tx pgx.Tx
	// done guards Rollback after Commit; pgx tolerates it, but we avoid the
	// spurious ErrTxClosed noise.
	done bool
}

// ResolvePerson finds or creates the canonical person for the record's folded
// name pair inside this file's transaction.
func (b *fileBatch) ResolvePerson(ctx context.Context, rec payledger.PayRecord, recordDate *time.Time) (int64, bool, error) {
	first := identity.Fold(rec.FirstName)
	last := identity.Fold(rec.LastName)

	var id int64
	err := b.tx.QueryRow(ctx, queryFindPerson, first, last).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to look up person %q %q: %w", first, last, err)
	}

	// New person, seeded with this record as the most recent observation.
	err = b.tx.QueryRow(ctx, queryInsertPerson,
		first, last, rec.Title, rec.Employer, recordDate,
	).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert person %q %q: %w", first, last, err)
	}
	return id, true, nil
}

// AddSalary appends one salary observation and advances the person's
// most-recent fields when this observation is the newest seen so far.
func (b *fileBatch) AddSalary(ctx context.Context, personID int64, rec payledger.PayRecord, recordDate *time.Time, sourceFile string) error {
	var lineNumber *int
	if rec.LineNumber > 0 {
		lineNumber = &rec.LineNumber
	}

	_, err := b.tx.Exec(ctx, queryInsertSalary,
		personID, rec.Title, rec.Employer, rec.Salary, rec.Bonus, rec.TotalPay,
		recordDate, sourceFile, lineNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert salary for person %d: %w", personID, err)
	}

	// An undated observation can never advance the most-recent fields; the
	// post-run recompute settles any remaining drift.
	if recordDate == nil {
		return nil
	}

	_, err = b.tx.Exec(ctx, queryAdvanceMostRecent,
		personID, rec.Title, rec.Employer, recordDate,
	)
	if err != nil {
		return fmt.Errorf("failed to advance most-recent fields for person %d: %w", personID, err)
	}
	return nil
}

// RecordFile writes the datafiles ledger entry for this file.
func (b *fileBatch) RecordFile(ctx context.Context, report payledger.FileReport) error {
	var checksum *string
	if report.Checksum != "" {
		checksum = &report.Checksum
	}

	_, err := b.tx.Exec(ctx, queryInsertDataFile,
		report.FileName, report.Rows, report.RowsSkipped, checksum,
		report.RecordDate, report.HasHeader,
	)
	if err != nil {
		return fmt.Errorf("failed to record file %s: %w", report.FileName, err)
	}
	return nil
}

// Commit makes the file's writes durable.
func (b *fileBatch) Commit(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit file transaction: %w", err)
	}
	b.done = true
	return nil
}

// Rollback discards the file's writes. Safe to call after Commit.
func (b *fileBatch) Rollback(ctx context.Context) error {
	if b.done {
		return nil
	}
	if err := b.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to roll back file transaction: %w", err)
	}
	return nil
}
