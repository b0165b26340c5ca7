package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kwhalen-data/payledger/internal/db"
	"github.com/kwhalen-data/payledger/internal/files/filesystem"
	"github.com/kwhalen-data/payledger/internal/rows"
	"github.com/kwhalen-data/payledger/internal/textenc"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// IngestionService implements the Ingestor interface.
// Thread-Safety: NOT safe for concurrent Ingest() calls on the same instance.
// Create separate instances for concurrent runs.
type IngestionService struct {
	approver       payledger.Approver
	logger         payledger.Logger
	sessionManager payledger.SessionPreparer
	fsProvider     filesystem.Provider
}

// NewIngestionService creates a new IngestionService with all dependencies
// injected, reading source files from the operating system's file system.
//
// Panic vs. Error Boundary Rationale:
//   - Panics on nil dependencies: These are programmer errors that should fail
//     loudly at application startup, not during a run. Fail-fast at
//     construction time prevents cryptic nil pointer dereferences deep in
//     call stacks.
//   - Returns errors for runtime conditions: Configuration validation,
//     connection failures, and file system errors are recoverable runtime
//     conditions that should be handled by the caller, not panics.
func NewIngestionService(
	approver payledger.Approver,
	logger payledger.Logger,
	sessionManager payledger.SessionPreparer,
) *IngestionService {
	return NewIngestionServiceWithFS(approver, logger, sessionManager, filesystem.NewOSFileSystem())
}

// NewIngestionServiceWithFS creates an IngestionService that reads source
// files through the given file system provider. Used by tests.
func NewIngestionServiceWithFS(
	approver payledger.Approver,
	logger payledger.Logger,
	sessionManager payledger.SessionPreparer,
	fsProvider filesystem.Provider,
) *IngestionService {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if sessionManager == nil {
		panic("sessionManager cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	return &IngestionService{
		approver:       approver,
		logger:         logger,
		sessionManager: sessionManager,
		fsProvider:     fsProvider,
	}
}

// Ingest executes a full-reload run: approval, table reset, per-file load,
// most-recent recomputation, summary.
// This method orchestrates the workflow by calling smaller, focused methods.
func (s *IngestionService) Ingest(ctx context.Context, config payledger.IngestConfig) (*payledger.RunSummary, error) {
	started := time.Now()

	connConfig, err := s.validateAndParseConfig(config)
	if err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = payledger.DefaultIngestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session, err := s.sessionManager.PrepareSession(ctx, connConfig, config.SourceDir)
	if err != nil {
		return nil, err // Error already wrapped by SessionManager
	}
	defer session.Close()

	// Every run is a full reload. The reset is destructive, so it sits behind
	// the approval gate even when the schema was just created.
	approved, err := s.approver.RequestApproval(ctx, config.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return nil, payledger.ErrApprovalDenied
	}

	s.logger.Verbose("Resetting payroll tables in database '%s'", config.DatabaseName)
	if err := session.Store().Reset(ctx); err != nil {
		return nil, fmt.Errorf("table reset failed: %w", err)
	}

	summary := &payledger.RunSummary{RunID: uuid.New()}
	normalizer := rows.NewNormalizer(config.Layout)
	seen := make(map[string]string) // normalized checksum -> first file name

	for _, file := range session.ScanResult().Files {
		if first, dup := seen[file.Checksum]; dup {
			s.logger.Warn("Skipping %s: duplicate of %s", file.Name, first)
			summary.FilesSkipped++
			continue
		}
		seen[file.Checksum] = file.Name

		report, err := s.processFile(ctx, session.Store(), normalizer, file)
		if err != nil {
			if runFatal(err) {
				return nil, err
			}
			s.logger.Warn("Skipping %s: %v", file.Name, err)
			summary.FilesSkipped++
			continue
		}

		s.logger.Info("✓ %s: %d rows in %v", report.FileName, report.Rows, report.Elapsed.Round(time.Millisecond))
		summary.Files++
		summary.Rows += report.Rows
		summary.RowsSkipped += report.RowsSkipped
	}

	s.logger.Verbose("Recomputing most-recent employment facts...")
	updated, err := session.Store().RecomputeMostRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("most-recent recomputation failed: %w", err)
	}
	s.logger.Verbose("Most-recent facts settled for %d people", updated)

	summary.People, summary.Salaries, err = session.Store().Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final counts: %w", err)
	}

	summary.Elapsed = time.Since(started)
	s.logger.Info("✓ Ingested %d files (%d rows, %d people) in %v",
		summary.Files, summary.Rows, summary.People, summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}

// validateAndParseConfig validates the configuration and parses the connection string.
func (s *IngestionService) validateAndParseConfig(config payledger.IngestConfig) (*payledger.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Starting ingestion into database '%s'", config.DatabaseName)
	s.logger.Verbose("Source directory: %s", config.SourceDir)

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if connConfig.AppName == "" {
		connConfig.AppName = "payledger"
	}
	connConfig.Database = config.DatabaseName

	// Apply auth method and cloud credentials from run config
	connConfig.AuthMethod = config.AuthMethod
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret
	connConfig.AWSRegion = config.AWSRegion
	connConfig.GoogleInstance = config.GoogleInstance

	return connConfig, nil
}

// processFile loads one disclosure file inside its own transaction. Row-level
// problems skip the row; everything else rolls the file back and the caller
// decides whether the run continues.
func (s *IngestionService) processFile(
	ctx context.Context,
	store payledger.Store,
	normalizer *rows.Normalizer,
	file payledger.SourceFile,
) (*payledger.FileReport, error) {
	fileStart := time.Now()

	raw, err := s.fsProvider.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	decoded, encName, err := textenc.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}
	if encName != "utf-8" {
		s.logger.Verbose("%s: transcoded from %s", file.Name, encName)
	}

	batch, err := store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin file transaction: %w", err)
	}
	defer batch.Rollback(ctx)

	report := &payledger.FileReport{
		FileName:   file.Name,
		Checksum:   file.Checksum,
		RecordDate: file.RecordDate,
	}

	// Disclosure files have ragged rows and unescaped quotes; the reader is
	// configured to tolerate both and row validation happens downstream.
	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed CSV: %w", err)
		}
		line++

		if line == 1 && rows.IsHeader(row) {
			report.HasHeader = true
			continue
		}
		if rows.IsEmpty(row) {
			continue
		}

		rec, err := normalizer.Normalize(row, line)
		if err != nil {
			var rowErr *rows.RowError
			if errors.As(err, &rowErr) {
				s.logger.Warn("%s: %v", file.Name, rowErr)
				report.RowsSkipped++
				continue
			}
			return nil, err
		}

		personID, _, err := batch.ResolvePerson(ctx, *rec, file.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("line %d: person resolution failed: %w", line, err)
		}
		if err := batch.AddSalary(ctx, personID, *rec, file.RecordDate, file.Name); err != nil {
			return nil, fmt.Errorf("line %d: salary insert failed: %w", line, err)
		}
		report.Rows++
	}

	report.Elapsed = time.Since(fileStart)
	if err := batch.RecordFile(ctx, *report); err != nil {
		return nil, fmt.Errorf("datafiles ledger insert failed: %w", err)
	}
	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}
	return report, nil
}

// runFatal reports errors that must abort the whole run rather than skip the
// current file. Context expiry covers the global timeout and Ctrl-C.
func runFatal(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
