/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/netreconio/netpulse/pkg/models"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	total INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS host_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	ip TEXT NOT NULL,
	state TEXT NOT NULL,
	rtt_ms REAL,
	diagnostic TEXT,
	timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS port_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	ip TEXT NOT NULL,
	port INTEGER NOT NULL,
	protocol TEXT NOT NULL,
	state TEXT NOT NULL,
	rtt_ms REAL,
	service_name TEXT,
	timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS neighbor_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	ip TEXT NOT NULL,
	rtt_ms REAL,
	mac TEXT,
	vendor TEXT,
	timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_kind_started ON runs(kind, started_at);
CREATE INDEX IF NOT EXISTS idx_host_results_run ON host_results(run_id);
CREATE INDEX IF NOT EXISTS idx_port_results_run ON port_results(run_id);
CREATE INDEX IF NOT EXISTS idx_neighbor_results_run ON neighbor_results(run_id);

PRAGMA journal_mode=WAL;
PRAGMA foreign_keys=ON;
`

// Store is the SQLite-backed run-history database.
type Store struct {
	db *sql.DB
}

// Open creates (or reopens) the SQLite database at dbPath and ensures
// the schema exists.
func Open(dbPath string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	s := &Store{db: sqlDB}

	if _, err := s.db.Exec(createTablesSQL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) beginTx() (*sqlTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	return &sqlTx{tx}, nil
}

func rollbackOnError(tx *sqlTx, err *error) {
	if *err == nil {
		return
	}

	if rbErr := tx.Rollback(); rbErr != nil {
		log.Printf("history: rollback failed: %v", rbErr)
	}
}

func upsertRun(tx *sqlTx, runID string, kind RunKind, total int) error {
	_, err := tx.Exec(`
		INSERT INTO runs (run_id, kind, total)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET finished_at = CURRENT_TIMESTAMP, total = excluded.total
	`, runID, string(kind), total)
	if err != nil {
		return fmt.Errorf("%w run: %w", ErrFailedToInsert, err)
	}

	return nil
}

// SaveHostScanReport records a completed host scan run.
func (s *Store) SaveHostScanReport(runID string, report models.HostScanReport) (err error) {
	tx, err := s.beginTx()
	if err != nil {
		return err
	}
	defer rollbackOnError(tx, &err)

	if err = upsertRun(tx, runID, RunKindHostScan, report.Total); err != nil {
		return err
	}

	all := append(append([]models.HostScanProgress{}, report.Alive...), report.Unreachable...)

	for _, h := range all {
		if _, execErr := tx.Exec(`
			INSERT INTO host_results (run_id, ip, state, rtt_ms, diagnostic)
			VALUES (?, ?, ?, ?, ?)
		`, runID, h.IP.String(), string(h.State), h.RTTMillis, h.Diagnostic); execErr != nil {
			err = fmt.Errorf("%w host result: %w", ErrFailedToInsert, execErr)
			return err
		}
	}

	err = tx.Commit()

	return err
}

// SavePortScanReport records a completed port scan run.
func (s *Store) SavePortScanReport(report models.PortScanReport) (err error) {
	tx, err := s.beginTx()
	if err != nil {
		return err
	}
	defer rollbackOnError(tx, &err)

	if err = upsertRun(tx, report.RunID, RunKindPortScan, report.Total); err != nil {
		return err
	}

	for _, p := range report.Open {
		if _, execErr := tx.Exec(`
			INSERT INTO port_results (run_id, ip, port, protocol, state, rtt_ms, service_name)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, report.RunID, report.IP, p.Port, string(p.Protocol), string(p.State), p.RTTMillis, p.ServiceName); execErr != nil {
			err = fmt.Errorf("%w port result: %w", ErrFailedToInsert, execErr)
			return err
		}
	}

	err = tx.Commit()

	return err
}

// SaveNeighborScanReport records a completed neighbor scan run.
func (s *Store) SaveNeighborScanReport(report models.NeighborScanReport) (err error) {
	tx, err := s.beginTx()
	if err != nil {
		return err
	}
	defer rollbackOnError(tx, &err)

	if err = upsertRun(tx, report.RunID, RunKindNeighborScan, report.Total); err != nil {
		return err
	}

	for _, n := range report.Neighbors {
		if _, execErr := tx.Exec(`
			INSERT INTO neighbor_results (run_id, ip, rtt_ms, mac, vendor)
			VALUES (?, ?, ?, ?, ?)
		`, report.RunID, n.IP.String(), n.RTTMillis, n.MAC, n.Vendor); execErr != nil {
			err = fmt.Errorf("%w neighbor result: %w", ErrFailedToInsert, execErr)
			return err
		}
	}

	err = tx.Commit()

	return err
}

// GetRun returns the run_id's summary row.
func (s *Store) GetRun(runID string) (RunSummary, error) {
	const query = `SELECT run_id, kind, started_at, finished_at, total FROM runs WHERE run_id = ?`

	var r RunSummary

	var kind string

	err := s.db.QueryRow(query, runID).Scan(&r.RunID, &kind, &r.StartedAt, &r.FinishedAt, &r.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunSummary{}, ErrRunNotFound
		}

		return RunSummary{}, fmt.Errorf("%w run: %w", ErrFailedToQuery, err)
	}

	r.Kind = RunKind(kind)

	return r, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	const query = `
		SELECT run_id, kind, started_at, finished_at, total
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w runs: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var runs []RunSummary

	for rows.Next() {
		var r RunSummary

		var kind string

		if scanErr := rows.Scan(&r.RunID, &kind, &r.StartedAt, &r.FinishedAt, &r.Total); scanErr != nil {
			return nil, fmt.Errorf("%w run row: %w", ErrFailedToScan, scanErr)
		}

		r.Kind = RunKind(kind)
		runs = append(runs, r)
	}

	return runs, nil
}

// GetPortResults returns the open-port rows recorded for runID.
func (s *Store) GetPortResults(runID string) ([]PortResultRow, error) {
	const query = `
		SELECT ip, port, protocol, state, rtt_ms, service_name, timestamp
		FROM port_results
		WHERE run_id = ?
		ORDER BY port ASC
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("%w port results: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var out []PortResultRow

	for rows.Next() {
		var (
			row         PortResultRow
			serviceName sql.NullString
			rtt         sql.NullFloat64
		)

		if scanErr := rows.Scan(&row.IP, &row.Port, &row.Protocol, &row.State, &rtt, &serviceName, &row.Timestamp); scanErr != nil {
			return nil, fmt.Errorf("%w port result row: %w", ErrFailedToScan, scanErr)
		}

		row.RunID = runID
		row.ServiceName = serviceName.String

		if rtt.Valid {
			v := rtt.Float64
			row.RTTMillis = &v
		}

		out = append(out, row)
	}

	return out, nil
}
