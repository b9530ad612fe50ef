package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trnamod/trnamod/internal/analysis"
)

func TestNewRun(t *testing.T) {
	r1 := NewRun("sample.fa", 0.95)
	r2 := NewRun("sample.fa", 0.95)

	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, "sample.fa", r1.Input)
	assert.InDelta(t, 0.95, r1.Threshold, 1e-9)
	assert.False(t, r1.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, r1.CreatedAt.Location())
}

func TestWriteAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("batch-1.fa", 0.95)
	run.Total = 4
	run.Odd = 1
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "batch-1.fa", got.Input)
	assert.InDelta(t, 0.95, got.Threshold, 1e-9)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 1, got.Odd)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestWriteRunIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("a.fa", 0.9)
	require.NoError(t, s.WriteRun(ctx, run))

	// Second write with the same id but different counts is silently
	// ignored; the first record wins.
	dup := run
	dup.Total = 99
	require.NoError(t, s.WriteRun(ctx, dup))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := NewRun("first.fa", 0.9)
	second := NewRun("second.fa", 0.9)
	require.NoError(t, s.WriteRun(ctx, first))
	require.NoError(t, s.WriteRun(ctx, second))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestListRunsEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestWriteVerdictRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("a.fa", 0.95)
	require.NoError(t, s.WriteRun(ctx, run))

	v := testVerdict("trna-1")
	require.NoError(t, s.WriteVerdict(ctx, run.ID, v))

	rows, err := s.VerdictsForRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, run.ID, got.RunID)
	assert.Equal(t, "trna-1", got.SequenceID)
	assert.Equal(t, MustVerdictHash(v), got.Hash)
	assert.Equal(t, v.SequenceID, got.Verdict.SequenceID)
	assert.InDelta(t, v.Score, got.Verdict.Score, 1e-9)
	assert.Equal(t, v.Checks, got.Verdict.Checks)
	assert.Equal(t, v.Incompatibilities, got.Verdict.Incompatibilities)
	assert.Equal(t, v.Missing, got.Verdict.Missing)
}

func TestWriteVerdictIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("a.fa", 0.95)
	require.NoError(t, s.WriteRun(ctx, run))

	require.NoError(t, s.WriteVerdict(ctx, run.ID, testVerdict("trna-1")))
	require.NoError(t, s.WriteVerdict(ctx, run.ID, testVerdict("trna-1")))

	rows, err := s.VerdictsForRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteVerdictRequiresRun(t *testing.T) {
	s := openTestStore(t)

	err := s.WriteVerdict(context.Background(), "missing-run", testVerdict("trna-1"))
	assert.Error(t, err)
}

func TestWriteRunResults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("batch.fa", 0.95)
	run.Total = 2

	require.NoError(t, s.WriteRunResults(ctx, run, []analysis.Verdict{
		testVerdict("trna-b"),
		testVerdict("trna-a"),
	}))

	rows, err := s.VerdictsForRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Binary collation on sequence_id gives deterministic readback order.
	assert.Equal(t, "trna-a", rows[0].SequenceID)
	assert.Equal(t, "trna-b", rows[1].SequenceID)
}
