package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("analysis run not found")

// Run is one row of the analysis audit log.
type Run struct {
	ID                   uuid.UUID       `json:"id"`
	AnalysisType         string          `json:"analysisType"`
	Basin                string          `json:"basin,omitempty"`
	Trigger              string          `json:"trigger"`
	Success              bool            `json:"success"`
	OverallProspectivity *float64        `json:"overallProspectivity,omitempty"`
	Payload              json.RawMessage `json:"payload,omitempty"`
	Error                string          `json:"error,omitempty"`
	Duration             time.Duration   `json:"-"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// MarshalJSON reports Duration in milliseconds.
func (r Run) MarshalJSON() ([]byte, error) {
	type alias Run
	return json.Marshal(struct {
		alias
		Duration int64 `json:"durationMs"`
	}{alias: alias(r), Duration: r.Duration.Milliseconds()})
}

// RecordRun inserts one run. Payload may be nil for failed runs.
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	var payload any
	if len(r.Payload) > 0 {
		payload = r.Payload
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO analysis_runs (id, analysis_type, basin, trigger, success, overall_prospectivity, payload, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		r.ID, r.AnalysisType, r.Basin, r.Trigger, r.Success, r.OverallProspectivity, payload, r.Error, r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

// RecentRuns lists the newest runs first. Payloads are left out.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, analysis_type, basin, trigger, success, overall_prospectivity, error, duration_ms, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analysis runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var ms int64
		if err := rows.Scan(&r.ID, &r.AnalysisType, &r.Basin, &r.Trigger, &r.Success, &r.OverallProspectivity, &r.Error, &ms, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun fetches one run including its payload.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, analysis_type, basin, trigger, success, overall_prospectivity, payload, error, duration_ms, created_at
		FROM analysis_runs WHERE id = $1`, id)

	var r Run
	var payload []byte
	var ms int64
	err := row.Scan(&r.ID, &r.AnalysisType, &r.Basin, &r.Trigger, &r.Success, &r.OverallProspectivity, &payload, &r.Error, &ms, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis run: %w", err)
	}
	r.Payload = payload
	r.Duration = time.Duration(ms) * time.Millisecond
	return &r, nil
}
