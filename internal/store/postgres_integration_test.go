package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/kwhalen-data/payledger/internal/store"
	testhelpers "github.com/kwhalen-data/payledger/internal/testing"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

func newTestStore(t *testing.T, dbName string) *store.PostgresStore {
	t.Helper()
	connString := testhelpers.RequireDatabase(t)

	cleanup := testhelpers.CreateTestDB(t, connString, dbName)
	t.Cleanup(cleanup)

	pool := testhelpers.GetTestPool(t, connString, dbName)
	s := store.NewPostgresStore(pool)

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return s
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func f64(v float64) *float64 { return &v }

func TestPostgresStore_ResolvePersonCreatesAndReuses(t *testing.T) {
	s := newTestStore(t, "payledger_test_resolve")
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer batch.Rollback(ctx)

	rec := payledger.PayRecord{
		FirstName: "jane",
		LastName:  "doe",
		Title:     "Clerk",
		Employer:  "Acme",
		TotalPay:  50000,
	}

	id1, created, err := batch.ResolvePerson(ctx, rec, date(2021, 3, 15))
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if !created {
		t.Error("expected first resolve to create the person")
	}

	// Same person, different capitalization: the fold makes them identical.
	rec2 := rec
	rec2.FirstName = "JANE"
	rec2.LastName = "DOE"
	id2, created, err := batch.ResolvePerson(ctx, rec2, date(2022, 3, 15))
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if created {
		t.Error("expected second resolve to reuse the person")
	}
	if id1 != id2 {
		t.Errorf("expected same person id, got %d and %d", id1, id2)
	}

	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	people, _, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if people != 1 {
		t.Errorf("expected 1 person, got %d", people)
	}
}

func TestPostgresStore_RollbackLeavesNoPartialRows(t *testing.T) {
	s := newTestStore(t, "payledger_test_rollback")
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	rec := payledger.PayRecord{FirstName: "John", LastName: "Smith", TotalPay: 42000, LineNumber: 2}
	id, _, err := batch.ResolvePerson(ctx, rec, nil)
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if err := batch.AddSalary(ctx, id, rec, nil, "pay 1-2021.csv"); err != nil {
		t.Fatalf("AddSalary failed: %v", err)
	}

	if err := batch.Rollback(ctx); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	people, salaries, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if people != 0 || salaries != 0 {
		t.Errorf("expected empty tables after rollback, got %d people, %d salaries", people, salaries)
	}
}

func TestPostgresStore_MostRecentAdvancesWithNewerDate(t *testing.T) {
	s := newTestStore(t, "payledger_test_mostrecent")
	ctx := context.Background()

	writeObservation := func(rec payledger.PayRecord, d *time.Time, file string) int64 {
		t.Helper()
		batch, err := s.Begin(ctx)
		if err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		id, _, err := batch.ResolvePerson(ctx, rec, d)
		if err != nil {
			t.Fatalf("ResolvePerson failed: %v", err)
		}
		if err := batch.AddSalary(ctx, id, rec, d, file); err != nil {
			t.Fatalf("AddSalary failed: %v", err)
		}
		if err := batch.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		return id
	}

	older := payledger.PayRecord{
		FirstName: "Ada", LastName: "Lovelace",
		Title: "Analyst", Employer: "Treasury",
		Salary: f64(60000), TotalPay: 60000,
	}
	newer := older
	newer.Title = "Senior Analyst"
	newer.TotalPay = 70000

	// Newest file first: the per-row advance must not regress when the
	// older file arrives later.
	id := writeObservation(newer, date(2023, 4, 1), "pay 4.2023.csv")
	writeObservation(older, date(2021, 4, 1), "pay 4.2021.csv")

	pool := testhelpers.GetTestPool(t, testhelpers.GetTestConnectionString(t), "payledger_test_mostrecent")
	var title string
	var mrDate time.Time
	err := pool.QueryRow(ctx,
		"SELECT most_recent_title, most_recent_date FROM person WHERE id = $1", id,
	).Scan(&title, &mrDate)
	if err != nil {
		t.Fatalf("query person failed: %v", err)
	}
	if title != "Senior Analyst" {
		t.Errorf("most_recent_title = %q, want Senior Analyst", title)
	}
	if !mrDate.Equal(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("most_recent_date = %v, want 2023-04-01", mrDate)
	}

	// The authoritative pass settles on the same answer.
	updated, err := s.RecomputeMostRecent(ctx)
	if err != nil {
		t.Fatalf("RecomputeMostRecent failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 person updated, got %d", updated)
	}
	err = pool.QueryRow(ctx,
		"SELECT most_recent_title FROM person WHERE id = $1", id,
	).Scan(&title)
	if err != nil {
		t.Fatalf("query person failed: %v", err)
	}
	if title != "Senior Analyst" {
		t.Errorf("after recompute, most_recent_title = %q, want Senior Analyst", title)
	}
}

func TestPostgresStore_ResetTruncatesAndRestartsIdentity(t *testing.T) {
	s := newTestStore(t, "payledger_test_reset")
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	rec := payledger.PayRecord{FirstName: "First", LastName: "Person", TotalPay: 1000}
	if _, _, err := batch.ResolvePerson(ctx, rec, nil); err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	people, salaries, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if people != 0 || salaries != 0 {
		t.Errorf("expected empty tables after reset, got %d people, %d salaries", people, salaries)
	}

	// Identity restarts from 1
	batch, err = s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	id, _, err := batch.ResolvePerson(ctx, rec, nil)
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if id != 1 {
		t.Errorf("expected id 1 after identity restart, got %d", id)
	}
}

func TestPostgresStore_RecordFile(t *testing.T) {
	s := newTestStore(t, "payledger_test_datafiles")
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	report := payledger.FileReport{
		FileName:    "pay 3-15-2021.csv",
		Rows:        120,
		RowsSkipped: 3,
		Checksum:    "abc123",
		RecordDate:  date(2021, 3, 15),
		HasHeader:   true,
	}
	if err := batch.RecordFile(ctx, report); err != nil {
		t.Fatalf("RecordFile failed: %v", err)
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	pool := testhelpers.GetTestPool(t, testhelpers.GetTestConnectionString(t), "payledger_test_datafiles")
	var rows int
	var hasHeader bool
	err = pool.QueryRow(ctx,
		"SELECT rows, has_header FROM datafiles WHERE file_name = $1", report.FileName,
	).Scan(&rows, &hasHeader)
	if err != nil {
		t.Fatalf("query datafiles failed: %v", err)
	}
	if rows != 120 || !hasHeader {
		t.Errorf("datafiles row = (%d, %v), want (120, true)", rows, hasHeader)
	}
}
