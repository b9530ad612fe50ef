package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trnamod/trnamod/internal/analysis"
)

// Run summarizes one analysis invocation.
type Run struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Input       string    `json:"input"`
	Threshold   float64   `json:"threshold"`
	Total       int       `json:"total"`
	Odd         int       `json:"odd"`
	NotScorable int       `json:"not_scorable"`
	Failed      int       `json:"failed"`
}

// NewRun stamps a run with a time-ordered UUID and creation time.
// UUIDv7 ids sort lexically in creation order, so run listings need no
// secondary sort key.
func NewRun(input string, threshold float64) Run {
	return Run{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Threshold: threshold,
	}
}

// WriteRun inserts a run record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored. Other constraint violations still return errors.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, input, threshold_milli, total, odd, not_scorable, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Input,
		ScoreMilli(run.Threshold),
		run.Total,
		run.Odd,
		run.NotScorable,
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteVerdict inserts a verdict record under a run.
// Uses ON CONFLICT DO NOTHING for idempotency - each (run, sequence) pair
// holds exactly one verdict, and re-writing it is a no-op.
//
// The verdict is stored twice over: summary columns for querying, and the
// full payload as JSON for readback. The content hash is computed from
// the canonical form, not the payload, so formatting changes in the
// payload encoder never shift identities.
//
// Note: The run referenced by runID must exist (foreign key constraint).
func (s *Store) WriteVerdict(ctx context.Context, runID string, v analysis.Verdict) error {
	hash, err := VerdictHash(v)
	if err != nil {
		return fmt.Errorf("write verdict: %w", err)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("write verdict: marshal payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO verdicts
		(run_id, sequence_id, verdict_hash, scorable, score_milli, odd,
		 scored_positions, incompatible_positions, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		runID,
		v.SequenceID,
		hash,
		v.Scorable,
		ScoreMilli(v.Score),
		v.Odd,
		v.ScoredPositions,
		v.IncompatiblePositions,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("write verdict: %w", err)
	}
	return nil
}

// WriteRunResults atomically writes a run and all its verdicts in a
// single transaction, so a crash mid-batch never leaves a run with a
// partial verdict set.
func (s *Store) WriteRunResults(ctx context.Context, run Run, verdicts []analysis.Verdict) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run results: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, input, threshold_milli, total, odd, not_scorable, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Input,
		ScoreMilli(run.Threshold),
		run.Total,
		run.Odd,
		run.NotScorable,
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("write run results: insert run: %w", err)
	}

	for _, v := range verdicts {
		hash, err := VerdictHash(v)
		if err != nil {
			return fmt.Errorf("write run results: verdict %q: %w", v.SequenceID, err)
		}
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("write run results: verdict %q: marshal payload: %w", v.SequenceID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO verdicts
			(run_id, sequence_id, verdict_hash, scorable, score_milli, odd,
			 scored_positions, incompatible_positions, payload)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`,
			run.ID,
			v.SequenceID,
			hash,
			v.Scorable,
			ScoreMilli(v.Score),
			v.Odd,
			v.ScoredPositions,
			v.IncompatiblePositions,
			string(payload),
		)
		if err != nil {
			return fmt.Errorf("write run results: verdict %q: %w", v.SequenceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run results: commit: %w", err)
	}
	return nil
}
