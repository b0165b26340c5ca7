package store

// DDL for the three ingestion tables. Centralizing SQL here keeps it
// separate from Go code and easy to review against the database.
const (
	ddlPerson = `
		CREATE TABLE IF NOT EXISTS person (
			id                   BIGSERIAL PRIMARY KEY,
			first_name           TEXT NOT NULL,
			last_name            TEXT NOT NULL,
			most_recent_title    TEXT,
			most_recent_employer TEXT,
			most_recent_date     DATE
		)
	`

	ddlSalary = `
		CREATE TABLE IF NOT EXISTS salary (
			id          BIGSERIAL PRIMARY KEY,
			person_id   BIGINT NOT NULL REFERENCES person(id),
			title       TEXT,
			employer    TEXT,
			salary      DOUBLE PRECISION,
			bonus       DOUBLE PRECISION,
			total_pay   DOUBLE PRECISION NOT NULL,
			entry_date  DATE,
			source_file TEXT NOT NULL,
			line_number INT
		)
	`

	ddlDataFiles = `
		CREATE TABLE IF NOT EXISTS datafiles (
			id           BIGSERIAL PRIMARY KEY,
			file_name    TEXT NOT NULL,
			rows         INT NOT NULL,
			rows_skipped INT NOT NULL DEFAULT 0,
			checksum     TEXT,
			file_date    DATE,
			has_header   BOOLEAN NOT NULL,
			ingested_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
)

// Name lookups dominate ingestion; the pay site queries filter by employer.
var ddlIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_person_first_name ON person (first_name)`,
	`CREATE INDEX IF NOT EXISTS idx_person_last_name ON person (last_name)`,
	`CREATE INDEX IF NOT EXISTS idx_person_full_name ON person (first_name, last_name)`,
	`CREATE INDEX IF NOT EXISTS idx_salary_person_id ON salary (person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_salary_source_file ON salary (source_file)`,
	`CREATE INDEX IF NOT EXISTS idx_salary_employer ON salary (employer)`,
}

const (
	queryTruncateAll = `TRUNCATE salary, person, datafiles RESTART IDENTITY CASCADE`

	queryFindPerson = `
		SELECT id
		FROM person
		WHERE first_name = $1 AND last_name = $2
		ORDER BY id
		LIMIT 1
	`

	queryInsertPerson = `
		INSERT INTO person (first_name, last_name, most_recent_title, most_recent_employer, most_recent_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	queryInsertSalary = `
		INSERT INTO salary (person_id, title, employer, salary, bonus, total_pay, entry_date, source_file, line_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	// Advances most-recent fields only when this observation is at least as
	// new as what the person already carries.
	queryAdvanceMostRecent = `
		UPDATE person
		SET most_recent_title = $2, most_recent_employer = $3, most_recent_date = $4
		WHERE id = $1
		  AND (most_recent_date IS NULL OR most_recent_date <= $4)
	`

	queryInsertDataFile = `
		INSERT INTO datafiles (file_name, rows, rows_skipped, checksum, file_date, has_header)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// The authoritative most-recent pass: for every person with at least one
	// salary row, pick the newest observation (NULL dates last, then highest
	// id as the tiebreaker) and copy its fields onto the person.
	queryRecomputeMostRecent = `
		UPDATE person p
		SET most_recent_title    = s.title,
		    most_recent_employer = s.employer,
		    most_recent_date     = s.entry_date
		FROM (
			SELECT DISTINCT ON (person_id) person_id, title, employer, entry_date
			FROM salary
			ORDER BY person_id, entry_date DESC NULLS LAST, id DESC
		) s
		WHERE p.id = s.person_id
	`

	queryCountPeople   = `SELECT count(*) FROM person`
	queryCountSalaries = `SELECT count(*) FROM salary`
)
