// Package runstore persists simulation run history in sqlite.
package runstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gridcare-data/coverage.report/internal/simapi"
)

// ErrRunNotFound is returned when a run id has no stored record.
var ErrRunNotFound = errors.New("run not found")

// RunRecord summarizes one stored simulation run. The full response payload
// is retrievable separately via GetRun.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	M           int       `json:"m"`
	N           int       `json:"n"`
	K           int       `json:"k"`
	Iterations  int       `json:"iterations"`
	Inertia     float64   `json:"inertia"`
	AvgDistance float64   `json:"avg_distance"`
	MaxDistance float64   `json:"max_distance"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store wraps the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and runs any pending
// migrations. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}

	// sqlite allows a single writer; one pooled connection also keeps
	// ":memory:" databases coherent across queries.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records a finished simulation run and returns its assigned id.
func (s *Store) SaveRun(params simapi.SimulationParams, resp *simapi.SimulationResponse) (string, error) {
	blob, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to encode response payload: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO runs (run_id, m, n, k, iterations, inertia, avg_distance, max_distance, response_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.M, params.N, params.K,
		resp.Iterations, resp.Inertia, resp.OverallAvgDistance, resp.OverallMaxDistance,
		string(blob), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit run records, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT run_id, m, n, k, iterations, inertia, avg_distance, max_distance, created_at
		FROM runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.M, &r.N, &r.K, &r.Iterations, &r.Inertia,
			&r.AvgDistance, &r.MaxDistance, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRun returns the record and full response payload of one run.
func (s *Store) GetRun(id string) (*RunRecord, *simapi.SimulationResponse, error) {
	var (
		r    RunRecord
		blob string
	)
	err := s.db.QueryRow(`
		SELECT run_id, m, n, k, iterations, inertia, avg_distance, max_distance, response_json, created_at
		FROM runs WHERE run_id = ?`, id).
		Scan(&r.RunID, &r.M, &r.N, &r.K, &r.Iterations, &r.Inertia,
			&r.AvgDistance, &r.MaxDistance, &blob, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}

	var resp simapi.SimulationResponse
	if err := json.Unmarshal([]byte(blob), &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to decode stored response: %w", err)
	}
	return &r, &resp, nil
}

// LatestRun returns the most recent run, or ErrRunNotFound when the store is
// empty.
func (s *Store) LatestRun() (*RunRecord, *simapi.SimulationResponse, error) {
	var id string
	err := s.db.QueryRow(`SELECT run_id FROM runs ORDER BY created_at DESC, run_id LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrRunNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return s.GetRun(id)
}
