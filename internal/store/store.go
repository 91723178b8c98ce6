package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/hoa-reconcile/internal/config"
	"github.com/hoa-reconcile/internal/match"
)

// Store persists reconciliation runs to Postgres. The engine itself never
// touches the database; a run is computed fully in memory and then archived
// here for the review UI and audit history.
type Store struct {
	DB *sql.DB
}

// Open connects to Postgres using PG* environment variables.
func Open() (*Store, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "hoa")
	password := config.GetEnv("PGPASSWORD", "hoa")
	dbname := config.GetEnv("PGDATABASE", "hoa_reconcile")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Store{DB: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// EnsureSchema creates the run and result tables if they do not exist.
func (s *Store) EnsureSchema() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS match_run (
			run_id      UUID PRIMARY KEY,
			run_label   TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			total       INT NOT NULL,
			exact       INT NOT NULL,
			fuzzy       INT NOT NULL,
			no_match    INT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS match_result (
			run_id               UUID NOT NULL REFERENCES match_run(run_id) ON DELETE CASCADE,
			row_rank             INT NOT NULL,
			owner_first_name     TEXT,
			owner_last_name      TEXT,
			owner_email          TEXT,
			owner_street         TEXT,
			owner_city           TEXT,
			owner_state_zip      TEXT,
			household_first_name TEXT,
			household_last_name  TEXT,
			household_emails     TEXT,
			household_street     TEXT,
			household_city       TEXT,
			household_state_zip  TEXT,
			score                INT NOT NULL,
			email_match          BOOLEAN NOT NULL,
			last_name_match      BOOLEAN NOT NULL,
			address_match        BOOLEAN NOT NULL,
			match_type           TEXT NOT NULL,
			flags                TEXT NOT NULL,
			PRIMARY KEY (run_id, row_rank)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun archives a complete result set under a fresh run ID. The whole
// run is written in one transaction; a failure leaves nothing behind.
func (s *Store) SaveRun(runLabel string, results []match.Result) (uuid.UUID, error) {
	runID := uuid.New()
	summary := match.Summarize(results)

	tx, err := s.DB.Begin()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO match_run (run_id, run_label, created_at, total, exact, fuzzy, no_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, runID, runLabel, time.Now().UTC(), summary.Total, summary.Exact, summary.Fuzzy, summary.NoMatch)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_result (
			run_id, row_rank,
			owner_first_name, owner_last_name, owner_email,
			owner_street, owner_city, owner_state_zip,
			household_first_name, household_last_name, household_emails,
			household_street, household_city, household_state_zip,
			score, email_match, last_name_match, address_match, match_type, flags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for rank, r := range results {
		var ownerFirst, ownerLast, ownerEmail, ownerStreet, ownerCity, ownerStateZip sql.NullString
		if r.Owner != nil {
			ownerFirst = nullable(r.Owner.FirstName)
			ownerLast = nullable(r.Owner.LastName)
			ownerEmail = nullable(r.Owner.Email)
			ownerStreet = nullable(r.Owner.Street)
			ownerCity = nullable(r.Owner.City)
			ownerStateZip = nullable(r.Owner.StateZip)
		}

		var hhFirst, hhLast, hhEmails, hhStreet, hhCity, hhStateZip sql.NullString
		if r.Household != nil {
			hhFirst = nullable(r.Household.FirstName)
			hhLast = nullable(r.Household.LastName)
			hhEmails = nullable(strings.Join(r.Household.Emails, "|"))
			hhStreet = nullable(r.Household.MailingStreet)
			hhCity = nullable(r.Household.MailingCity)
			hhStateZip = nullable(r.Household.MailingStateZip)
		}

		_, err = stmt.Exec(
			runID, rank,
			ownerFirst, ownerLast, ownerEmail, ownerStreet, ownerCity, ownerStateZip,
			hhFirst, hhLast, hhEmails, hhStreet, hhCity, hhStateZip,
			r.Score, r.Details.EmailMatch, r.Details.LastNameMatch, r.Details.AddressMatch,
			string(r.Type), strings.Join(r.Flags.Names(), "|"),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert result row %d: %w", rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// RunInfo is one archived run with its summary counts.
type RunInfo struct {
	RunID     uuid.UUID     `json:"run_id"`
	RunLabel  string        `json:"run_label"`
	CreatedAt time.Time     `json:"created_at"`
	Summary   match.Summary `json:"summary"`
}

// ListRuns returns archived runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunInfo, error) {
	rows, err := s.DB.Query(`
		SELECT run_id, run_label, created_at, total, exact, fuzzy, no_match
		FROM match_run
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		err := rows.Scan(&info.RunID, &info.RunLabel, &info.CreatedAt,
			&info.Summary.Total, &info.Summary.Exact, &info.Summary.Fuzzy, &info.Summary.NoMatch)
		if err != nil {
			return nil, err
		}
		runs = append(runs, info)
	}

	return runs, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
