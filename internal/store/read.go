package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trnamod/trnamod/internal/analysis"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// VerdictRow pairs a stored verdict with its run and content hash.
type VerdictRow struct {
	RunID      string           `json:"run_id"`
	SequenceID string           `json:"sequence_id"`
	Hash       string           `json:"hash"`
	Verdict    analysis.Verdict `json:"verdict"`
}

// ListRuns returns all runs, newest first. UUIDv7 ids sort in creation
// order, so ordering by id descending is ordering by time.
//
// Returns an empty slice (not nil) when no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, input, threshold_milli, total, odd, not_scorable, failed
		FROM runs
		ORDER BY id COLLATE BINARY DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}

// GetRun returns the run with the given id, or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, input, threshold_milli, total, odd, not_scorable, failed
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// VerdictsForRun returns all verdicts recorded under a run, ordered by
// sequence id with binary collation for deterministic output.
//
// Returns an empty slice (not nil) when the run has no verdicts.
func (s *Store) VerdictsForRun(ctx context.Context, runID string) ([]VerdictRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, sequence_id, verdict_hash, payload
		FROM verdicts
		WHERE run_id = ?
		ORDER BY sequence_id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []VerdictRow
	for rows.Next() {
		var vr VerdictRow
		var payload string
		if err := rows.Scan(&vr.RunID, &vr.SequenceID, &vr.Hash, &payload); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &vr.Verdict); err != nil {
			return nil, fmt.Errorf("unmarshal verdict %q: %w", vr.SequenceID, err)
		}
		verdicts = append(verdicts, vr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}

	if verdicts == nil {
		verdicts = []VerdictRow{}
	}
	return verdicts, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var createdAt string
	var thresholdMilli int64
	if err := sc.Scan(
		&run.ID,
		&createdAt,
		&run.Input,
		&thresholdMilli,
		&run.Total,
		&run.Odd,
		&run.NotScorable,
		&run.Failed,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: parse created_at: %w", err)
	}
	run.CreatedAt = ts
	run.Threshold = float64(thresholdMilli) / 1000

	return run, nil
}
