package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kwhalen-data/payledger/internal/store"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// SessionManager handles session initialization for an ingestion run.
// Responsibility: scan the source directory, connect to the database, and
// create the schema when it does not exist yet.
//
// SessionManager is thread-safe for concurrent use as long as the injected
// dependencies (connectorFactory, fileScanner, logger) are also thread-safe.
type SessionManager struct {
	connectorFactory func(*payledger.ConnectionConfig) (payledger.Connector, error)
	fileScanner      payledger.FileScanner
	logger           payledger.Logger
}

// NewSessionManager creates a new SessionManager with all dependencies injected.
//
// Panics if any dependency is nil. This is intentional fail-fast behavior
// to prevent cryptic nil pointer dereferences later. Panics indicate
// programmer error (incorrect dependency injection setup).
func NewSessionManager(
	connectorFactory func(*payledger.ConnectionConfig) (payledger.Connector, error),
	fileScanner payledger.FileScanner,
	logger payledger.Logger,
) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SessionManager{
		connectorFactory: connectorFactory,
		fileScanner:      fileScanner,
		logger:           logger,
	}
}

// PrepareSession scans the source directory, connects to the database, and
// ensures the payroll schema exists.
//
// Returns:
//   - Session object encapsulating the store and scan results
//   - Error if any step fails
//
// The caller is responsible for closing the session: defer session.Close().
func (sm *SessionManager) PrepareSession(
	ctx context.Context,
	connConfig *payledger.ConnectionConfig,
	sourceDir string,
) (*payledger.Session, error) {
	scanResult, err := sm.scanSourceFiles(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("file scanning failed: %w", err)
	}

	pool, err := sm.connectToDatabase(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	st := store.NewPostgresStore(pool)

	sm.logger.Verbose("Ensuring payroll schema exists...")
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("schema preparation failed: %w", err)
	}

	session := payledger.NewSession(st, scanResult)
	return session, nil
}

// scanSourceFiles scans the source directory and surfaces scan warnings.
func (sm *SessionManager) scanSourceFiles(sourceDir string) (payledger.ScanResult, error) {
	sm.logger.Verbose("Scanning files from source directory...")

	scanResult, err := sm.fileScanner.ScanDirectory(sourceDir)
	if err != nil {
		return payledger.ScanResult{}, fmt.Errorf("failed to scan directory %q: %w", sourceDir, err)
	}

	for _, warning := range scanResult.Warnings {
		sm.logger.Warn("%s", warning)
	}
	sm.logger.Verbose("Found %d files to load", len(scanResult.Files))

	return scanResult, nil
}

// connectToDatabase establishes a connection to the target database.
func (sm *SessionManager) connectToDatabase(
	ctx context.Context,
	connConfig *payledger.ConnectionConfig,
) (*pgxpool.Pool, error) {
	sm.logger.Verbose("Connecting to database '%s'", connConfig.Database)

	connector, err := sm.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	return pool, nil
}
