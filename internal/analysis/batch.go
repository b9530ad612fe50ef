package analysis

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Sequence is one batch input: a sequence identifier, its alignment trace,
// and an optional isotype for isotype-specific expectations.
type Sequence struct {
	ID      string
	Events  []sprinzl.TraceEvent
	Isotype string
}

// SequenceError attaches a recoverable failure to the sequence it concerns,
// so batch reports retain full provenance.
type SequenceError struct {
	SequenceID string `json:"sequence_id"`
	Err        error  `json:"-"`
	Message    string `json:"error"`
}

func (e SequenceError) Error() string {
	return e.SequenceID + ": " + e.Message
}

func (e SequenceError) Unwrap() error {
	return e.Err
}

// BatchResult aggregates a batch run. Verdicts holds one entry per
// successfully mapped sequence in input order; Failures holds the
// sequences whose traces could not be mapped.
type BatchResult struct {
	Verdicts []*Verdict      `json:"verdicts"`
	Failures []SequenceError `json:"failures,omitempty"`

	Total        int     `json:"total"`
	Odd          int     `json:"odd"`
	NotScorable  int     `json:"not_scorable"`
	AverageScore float64 `json:"average_score"`
}

// AnalyzeBatch maps and scores a batch of sequences. Sequences are
// independent, so they are analyzed in parallel, bounded by workers
// (GOMAXPROCS when workers <= 0). A mapping failure marks that sequence
// failed and the batch continues; only context cancellation aborts it.
//
// Verdict order matches input order regardless of completion order.
func AnalyzeBatch(ctx context.Context, ref *sprinzl.Reference, db *mods.Database, seqs []Sequence, opts Options, workers int) (*BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	verdicts := make([]*Verdict, len(seqs))
	errs := make([]error, len(seqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seq := range seqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mapping, err := sprinzl.Map(ref, seq.Events)
			if err != nil {
				errs[i] = err
				return nil
			}
			o := opts
			if o.Isotype == "" {
				o.Isotype = seq.Isotype
			}
			verdicts[i] = Analyze(db, mapping, seq.ID, o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &BatchResult{}
	var scoreSum float64
	scorable := 0
	for i, v := range verdicts {
		if v == nil {
			result.Failures = append(result.Failures, SequenceError{
				SequenceID: seqs[i].ID,
				Err:        errs[i],
				Message:    errs[i].Error(),
			})
			continue
		}
		result.Verdicts = append(result.Verdicts, v)
		result.Total++
		if !v.Scorable {
			result.NotScorable++
			continue
		}
		scorable++
		scoreSum += v.Score
		if v.Odd {
			result.Odd++
		}
	}
	if scorable > 0 {
		result.AverageScore = scoreSum / float64(scorable)
	}
	return result, nil
}
