package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bhackett1/OptSimple/internal/config"
)

// ErrRunNotFound is returned for unknown run ids.
var ErrRunNotFound = fmt.Errorf("run not found")

// Run is one beamOn invocation.
type Run struct {
	RunID      string          `json:"run_id"`
	Seed       uint64          `json:"seed"`
	Workers    int             `json:"workers"`
	Geometry   string          `json:"geometry"`
	Settings   config.Settings `json:"settings"`
	GunOffset  float64         `json:"gun_offset_mm"`
	EventCount int             `json:"event_count"`
	StartedAt  int64           `json:"started_at"`
	FinishedAt *int64          `json:"finished_at,omitempty"`
}

// Vertex is a stored primary vertex with the draws that produced it.
type Vertex struct {
	RunID    string  `json:"run_id"`
	EventID  int     `json:"event_id"`
	Particle string  `json:"particle"`
	Energy   float64 `json:"energy_mev"`
	Phi      float64 `json:"phi"`
	Height   float64 `json:"height_mm"`
	U        float64 `json:"u"`
	X        float64 `json:"x_mm"`
	Y        float64 `json:"y_mm"`
	Z        float64 `json:"z_mm"`
}

// InsertRun stores run. A missing RunID is filled with a new UUID and a zero
// StartedAt with the current time.
func (db *DB) InsertRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.StartedAt == 0 {
		run.StartedAt = db.clock.Now().UnixNano()
	}
	settings, err := json.Marshal(run.Settings)
	if err != nil {
		return fmt.Errorf("marshal run settings: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO runs (
			run_id, seed, workers, geometry, settings_json,
			gun_offset_mm, event_count, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, int64(run.Seed), run.Workers, run.Geometry, string(settings),
		run.GunOffset, run.EventCount, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the final event count and completion time.
func (db *DB) FinishRun(runID string, events int) error {
	res, err := db.Exec(`UPDATE runs SET event_count = ?, finished_at = ? WHERE run_id = ?`,
		events, db.clock.Now().UnixNano(), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

const runColumns = `run_id, seed, workers, geometry, settings_json, gun_offset_mm, event_count, started_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	r := &Run{}
	var seed int64
	var settings string
	var finished sql.NullInt64
	if err := row.Scan(&r.RunID, &seed, &r.Workers, &r.Geometry, &settings,
		&r.GunOffset, &r.EventCount, &r.StartedAt, &finished); err != nil {
		return nil, err
	}
	r.Seed = uint64(seed)
	if err := json.Unmarshal([]byte(settings), &r.Settings); err != nil {
		return nil, fmt.Errorf("parse run settings: %w", err)
	}
	if finished.Valid {
		r.FinishedAt = &finished.Int64
	}
	return r, nil
}

// GetRun loads a run by id.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns all runs, oldest first.
func (db *DB) ListRuns() ([]*Run, error) {
	rows, err := db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY started_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// InsertVertices stores vertices in one transaction.
func (db *DB) InsertVertices(vertices []Vertex) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO vertices (
			run_id, event_id, particle, energy_mev, phi, height_mm, u, x_mm, y_mm, z_mm
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare vertex insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range vertices {
		if _, err := stmt.Exec(v.RunID, v.EventID, v.Particle, v.Energy, v.Phi, v.Height, v.U, v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("insert vertex %d: %w", v.EventID, err)
		}
	}
	return tx.Commit()
}

// ListVertices returns the vertices of a run ordered by event id.
func (db *DB) ListVertices(runID string) ([]Vertex, error) {
	rows, err := db.Query(`
		SELECT run_id, event_id, particle, energy_mev, phi, height_mm, u, x_mm, y_mm, z_mm
		FROM vertices WHERE run_id = ? ORDER BY event_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list vertices: %w", err)
	}
	defer rows.Close()

	var out []Vertex
	for rows.Next() {
		var v Vertex
		if err := rows.Scan(&v.RunID, &v.EventID, &v.Particle, &v.Energy, &v.Phi, &v.Height, &v.U, &v.X, &v.Y, &v.Z); err != nil {
			return nil, fmt.Errorf("scan vertex: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
