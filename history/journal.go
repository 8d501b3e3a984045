// Copyright (C) 2025 Mac Configurator Authors
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// Package history records apply runs and their per-setting outcomes in a
// SQLite journal kept inside the configuration directory.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite3 driver

	"github.com/lopperman/mac-configurator/types"
)

// FileName is the journal database file inside the config directory.
const FileName = "history.db"

// Journal is the apply-history database.
type Journal struct {
	db *sql.DB
}

// Run is one recorded apply invocation.
type Run struct {
	ID        int64
	Profile   string
	StartedAt time.Time
	Summary   types.ApplySummary
}

// Open opens (creating if needed) the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// initializeSchema creates the journal tables if they don't exist.
func (j *Journal) initializeSchema() error {
	runsTableSQL := `
		CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			profile       TEXT NOT NULL,
			started_at    TEXT NOT NULL,
			applied       INTEGER NOT NULL DEFAULT 0,
			skipped_admin INTEGER NOT NULL DEFAULT 0,
			invalid       INTEGER NOT NULL DEFAULT 0,
			unknown       INTEGER NOT NULL DEFAULT 0,
			failed        INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile);
	`
	if _, err := j.db.Exec(runsTableSQL); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	outcomesTableSQL := `
		CREATE TABLE IF NOT EXISTS outcomes (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			key    TEXT NOT NULL,
			status TEXT NOT NULL,
			detail TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id);
	`
	if _, err := j.db.Exec(outcomesTableSQL); err != nil {
		return fmt.Errorf("failed to create outcomes table: %w", err)
	}

	return nil
}

// Record stores one apply run with its outcomes and returns the run ID.
func (j *Journal) Record(profile string, startedAt time.Time, outcomes []types.ApplyOutcome) (int64, error) {
	summary := types.Summarize(outcomes)

	tx, err := j.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (profile, started_at, applied, skipped_admin, invalid, unknown, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile, startedAt.UTC().Format(time.RFC3339),
		summary.Applied, summary.SkippedAdmin, summary.Invalid, summary.Unknown, summary.Failed)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, o := range outcomes {
		if _, err := tx.Exec(
			`INSERT INTO outcomes (run_id, key, status, detail) VALUES (?, ?, ?, ?)`,
			runID, o.Key, string(o.Status), o.Detail); err != nil {
			return 0, fmt.Errorf("failed to insert outcome for %s: %w", o.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Recent returns the most recent runs, newest first.
func (j *Journal) Recent(limit int) ([]Run, error) {
	rows, err := j.db.Query(
		`SELECT id, profile, started_at, applied, skipped_admin, invalid, unknown, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &r.Profile, &startedAt,
			&r.Summary.Applied, &r.Summary.SkippedAdmin, &r.Summary.Invalid,
			&r.Summary.Unknown, &r.Summary.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, startedAt); parseErr == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Outcomes returns the per-setting outcomes for one run, in insertion order.
func (j *Journal) Outcomes(runID int64) ([]types.ApplyOutcome, error) {
	rows, err := j.db.Query(
		`SELECT key, status, detail FROM outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []types.ApplyOutcome
	for rows.Next() {
		var o types.ApplyOutcome
		var status string
		if err := rows.Scan(&o.Key, &status, &o.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.Status = types.OutcomeStatus(status)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// SuccessRates returns the applied percentage per run for the most recent
// runs, oldest first, ready for plotting. Runs with zero outcomes count as
// 100 percent: nothing needed applying and nothing failed.
func (j *Journal) SuccessRates(limit int) ([]float64, error) {
	runs, err := j.Recent(limit)
	if err != nil {
		return nil, err
	}

	rates := make([]float64, 0, len(runs))
	// Recent is newest first; reverse so the graph reads left to right.
	for i := len(runs) - 1; i >= 0; i-- {
		total := runs[i].Summary.Total()
		if total == 0 {
			rates = append(rates, 100)
			continue
		}
		rates = append(rates, float64(runs[i].Summary.Applied)/float64(total)*100)
	}
	return rates, nil
}

// Prune keeps the newest keep runs and removes everything older, outcomes
// included.
func (j *Journal) Prune(keep int) error {
	_, err := j.db.Exec(
		`DELETE FROM outcomes WHERE run_id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune outcomes: %w", err)
	}
	_, err = j.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune runs: %w", err)
	}
	return nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}
