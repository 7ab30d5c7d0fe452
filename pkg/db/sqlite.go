// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/pkg/checks"
)

// schema bootstraps the result archive. Results are stored as JSON
// since every check defines its own data shape.
const schema = `
CREATE TABLE IF NOT EXISTS check_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	check_name TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_check_results_name_id ON check_results (check_name, id);
`

var _ DB = (*Sqlite)(nil)

// Sqlite is a result store backed by a sqlite database file.
// The latest result per check is cached in memory; every result
// is archived in the database.
type Sqlite struct {
	mu     sync.RWMutex
	db     *sql.DB
	latest map[string]checks.Result
	log    *slog.Logger
}

// NewSqlite opens the sqlite database at the given path and
// bootstraps the schema
func NewSqlite(path string) (*Sqlite, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	// modernc sqlite serializes writes itself but rejects concurrent
	// write transactions on separate connections
	d.SetMaxOpenConns(1)

	if _, err = d.Exec(schema); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	s := &Sqlite{db: d, latest: map[string]checks.Result{}, log: logger.NewLogger().With("component", "sqlite")}
	if err = s.loadLatest(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

// loadLatest seeds the in-memory cache with the newest archived
// result of each check
func (s *Sqlite) loadLatest() error {
	rows, err := s.db.Query(`
		SELECT check_name, timestamp, data
		FROM check_results
		WHERE id IN (SELECT MAX(id) FROM check_results GROUP BY check_name)`)
	if err != nil {
		return fmt.Errorf("failed to load latest results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, ts, data string
		if err = rows.Scan(&name, &ts, &data); err != nil {
			return fmt.Errorf("failed to scan result row: %w", err)
		}
		res, rErr := rowToResult(ts, data)
		if rErr != nil {
			s.log.Warn("Skipping malformed archived result", "check", name, "error", rErr)
			continue
		}
		s.latest[name] = res
	}
	return rows.Err()
}

// Save stores the result of a check run
func (s *Sqlite) Save(result checks.ResultDTO) {
	if result.Result == nil {
		return
	}

	s.mu.Lock()
	s.latest[result.Name] = *result.Result
	s.mu.Unlock()

	data, err := json.Marshal(result.Result.Data)
	if err != nil {
		s.log.Error("Failed to serialize check result", "check", result.Name, "error", err)
		return
	}

	_, err = s.db.Exec(
		`INSERT INTO check_results (check_name, timestamp, data) VALUES (?, ?, ?)`,
		result.Name, result.Result.Timestamp.Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		s.log.Error("Failed to archive check result", "check", result.Name, "error", err)
	}
}

// Get returns the latest result of the check with the given name
func (s *Sqlite) Get(check string) (checks.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.latest[check]
	return res, ok
}

// List returns the latest result of every check
func (s *Sqlite) List() map[string]checks.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string]checks.Result, len(s.latest))
	for name, res := range s.latest {
		results[name] = res
	}
	return results
}

// History returns up to limit archived results of the check, newest first
func (s *Sqlite) History(check string, limit int) ([]checks.Result, error) {
	rows, err := s.db.Query(
		`SELECT timestamp, data FROM check_results WHERE check_name = ? ORDER BY id DESC LIMIT ?`,
		check, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var results []checks.Result
	for rows.Next() {
		var ts, data string
		if err = rows.Scan(&ts, &data); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		res, rErr := rowToResult(ts, data)
		if rErr != nil {
			return nil, rErr
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Close closes the underlying database
func (s *Sqlite) Close() error {
	return s.db.Close()
}

func rowToResult(ts, data string) (checks.Result, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return checks.Result{}, fmt.Errorf("failed to parse result timestamp: %w", err)
	}

	var d any
	if err = json.Unmarshal([]byte(data), &d); err != nil {
		return checks.Result{}, fmt.Errorf("failed to deserialize result data: %w", err)
	}
	return checks.Result{Data: d, Timestamp: t}, nil
}
