// Package store implements the PostgreSQL storage session for ingestion runs.
//
// One PostgresStore owns the connection pool for the duration of a run. Each
// source file is written inside its own transaction (a FileBatch), so a
// mid-file failure leaves no partial Salary rows behind. After every file has
// been committed, RecomputeMostRecent runs the authoritative pass that points
// each Person at its newest Salary observation.
package store
