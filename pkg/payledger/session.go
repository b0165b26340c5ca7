package payledger

import "context"

// SessionPreparer abstracts session preparation for testability.
type SessionPreparer interface {
	PrepareSession(ctx context.Context, connConfig *ConnectionConfig, sourceDir string) (*Session, error)
}

// Session encapsulates a prepared ingestion session: the storage session and
// the source-file scan results.
//
// Thread-Safety: NOT safe for concurrent use. Each goroutine should have
// its own Session instance.
//
// Lifecycle:
//  1. Created by SessionManager.PrepareSession()
//  2. Used for one ingestion run
//  3. Cleaned up via Close() (idempotent)
type Session struct {
	store      Store
	scanResult ScanResult
}

// NewSession creates a new Session instance.
// This is intended to be called by SessionManager, not by external code.
//
// Panics if store is nil (programmer error - SessionManager should never
// create a Session without a storage session).
func NewSession(store Store, scanResult ScanResult) *Session {
	if store == nil {
		panic("store cannot be nil")
	}
	return &Session{
		store:      store,
		scanResult: scanResult,
	}
}

// Store returns the storage session. Valid until Close() is called.
func (s *Session) Store() Store {
	return s.store
}

// ScanResult returns the source-file scan results for the session.
func (s *Session) ScanResult() ScanResult {
	return s.scanResult
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
func (s *Session) Close() error {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
	return nil
}
