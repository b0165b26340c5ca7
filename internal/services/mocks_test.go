package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// memStore is an in-memory payledger.Store. Writes buffer inside a batch and
// only land on Commit, mirroring the per-file transaction contract.
type memStore struct {
	resetCalls     int
	recomputeCalls int
	closed         bool

	people   map[string]int64
	salaries []memSalary
	reports  []payledger.FileReport

	beginErr error
	resetErr error
}

type memSalary struct {
	personID   int64
	rec        payledger.PayRecord
	recordDate *time.Time
	sourceFile string
}

func newMemStore() *memStore {
	return &memStore{people: make(map[string]int64)}
}

func (s *memStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *memStore) Reset(ctx context.Context) error {
	s.resetCalls++
	if s.resetErr != nil {
		return s.resetErr
	}
	// Mirror the driver: a dead context fails the round trip.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.people = make(map[string]int64)
	s.salaries = nil
	s.reports = nil
	return nil
}

func (s *memStore) Begin(ctx context.Context) (payledger.FileBatch, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &memBatch{store: s, pending: make(map[string]int64)}, nil
}

func (s *memStore) RecomputeMostRecent(ctx context.Context) (int64, error) {
	s.recomputeCalls++
	return int64(len(s.people)), nil
}

func (s *memStore) Counts(ctx context.Context) (int64, int64, error) {
	return int64(len(s.people)), int64(len(s.salaries)), nil
}

func (s *memStore) Close() { s.closed = true }

type memBatch struct {
	store    *memStore
	pending  map[string]int64
	salaries []memSalary
	reports  []payledger.FileReport
	done     bool
}

func (b *memBatch) ResolvePerson(ctx context.Context, rec payledger.PayRecord, recordDate *time.Time) (int64, bool, error) {
	key := rec.FirstName + "|" + rec.LastName
	if id, ok := b.store.people[key]; ok {
		return id, false, nil
	}
	if id, ok := b.pending[key]; ok {
		return id, false, nil
	}
	id := int64(len(b.store.people) + len(b.pending) + 1)
	b.pending[key] = id
	return id, true, nil
}

func (b *memBatch) AddSalary(ctx context.Context, personID int64, rec payledger.PayRecord, recordDate *time.Time, sourceFile string) error {
	b.salaries = append(b.salaries, memSalary{personID, rec, recordDate, sourceFile})
	return nil
}

func (b *memBatch) RecordFile(ctx context.Context, report payledger.FileReport) error {
	b.reports = append(b.reports, report)
	return nil
}

func (b *memBatch) Commit(ctx context.Context) error {
	for key, id := range b.pending {
		b.store.people[key] = id
	}
	b.store.salaries = append(b.store.salaries, b.salaries...)
	b.store.reports = append(b.store.reports, b.reports...)
	b.done = true
	return nil
}

func (b *memBatch) Rollback(ctx context.Context) error {
	b.done = true
	return nil
}

// stubPreparer hands out a ready-made session, or fails.
type stubPreparer struct {
	session *payledger.Session
	err     error
}

func (p *stubPreparer) PrepareSession(ctx context.Context, connConfig *payledger.ConnectionConfig, sourceDir string) (*payledger.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

// stubApprover answers without prompting and records the database it was
// asked about.
type stubApprover struct {
	approve bool
	err     error
	askedDB string
	calls   int
}

func (a *stubApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	a.calls++
	a.askedDB = dbName
	return a.approve, a.err
}

// stubScanner returns a canned scan result.
type stubScanner struct {
	result payledger.ScanResult
	err    error
}

func (s *stubScanner) ScanDirectory(sourceDir string) (payledger.ScanResult, error) {
	if s.err != nil {
		return payledger.ScanResult{}, s.err
	}
	return s.result, nil
}

// recordingLogger captures log lines per level for assertions.
type recordingLogger struct {
	verbose  []string
	info     []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
