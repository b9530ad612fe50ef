package modkit

import (
	"sort"

	"github.com/trnamod/trnamod/internal/analysis"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Agreement classifies one position of a reconciliation.
type Agreement int

const (
	// ExpectedAndObserved: the catalogue expects a modification there and
	// an external call reports one.
	ExpectedAndObserved Agreement = iota
	// ExpectedButAbsent: the catalogue expects a modification but no
	// external call covers the position.
	ExpectedButAbsent
	// ObservedButUnexpected: an external call covers a position with no
	// catalogue expectation.
	ObservedButUnexpected
	// NeitherSideHasSignal: the position is covered by the sequence but
	// neither side reports anything.
	NeitherSideHasSignal
)

func (a Agreement) String() string {
	switch a {
	case ExpectedAndObserved:
		return "expected_and_observed"
	case ExpectedButAbsent:
		return "expected_but_absent"
	case ObservedButUnexpected:
		return "observed_but_unexpected"
	case NeitherSideHasSignal:
		return "neither_side_has_signal"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Agreement) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// PositionAgreement is the join result for one covered position.
type PositionAgreement struct {
	Pos       sprinzl.Position `json:"position"`
	Agreement Agreement        `json:"agreement"`
	Expected  []string         `json:"expected,omitempty"`
	Call      *Call            `json:"call,omitempty"`
}

// Report is the reconciliation outcome for one sequence.
type Report struct {
	SequenceID string              `json:"sequence_id"`
	Positions  []PositionAgreement `json:"positions"`

	// Unmatched holds calls referencing positions the verdict does not
	// cover. Recorded, never fatal.
	Unmatched []Call `json:"unmatched,omitempty"`

	Counts map[string]int `json:"counts"`
}

// Reconcile joins one verdict against the external calls for its sequence.
// Calls for other sequences are ignored here; use ReconcileAll for batches.
func Reconcile(v *analysis.Verdict, calls []Call) *Report {
	report := &Report{SequenceID: v.SequenceID, Counts: make(map[string]int)}

	expected := make(map[sprinzl.Position][]string, len(v.Checks))
	for _, c := range v.Checks {
		expected[c.Pos] = c.Expected
	}

	byPos := make(map[sprinzl.Position]*Call)
	for i := range calls {
		call := calls[i]
		if call.SequenceID != v.SequenceID {
			continue
		}
		covered := false
		for _, pb := range v.Covered {
			if pb.Pos == call.Pos {
				covered = true
				break
			}
		}
		if !covered {
			report.Unmatched = append(report.Unmatched, call)
			continue
		}
		// Highest-probability call wins when a position is called twice.
		if prev, dup := byPos[call.Pos]; !dup || call.Probability > prev.Probability {
			c := call
			byPos[call.Pos] = &c
		}
	}

	for _, pb := range v.Covered {
		pa := PositionAgreement{Pos: pb.Pos}
		exp, hasExpectation := expected[pb.Pos]
		call := byPos[pb.Pos]
		switch {
		case hasExpectation && call != nil:
			pa.Agreement = ExpectedAndObserved
		case hasExpectation:
			pa.Agreement = ExpectedButAbsent
		case call != nil:
			pa.Agreement = ObservedButUnexpected
		default:
			pa.Agreement = NeitherSideHasSignal
		}
		pa.Expected = exp
		pa.Call = call
		report.Positions = append(report.Positions, pa)
		report.Counts[pa.Agreement.String()]++
	}

	sort.Slice(report.Positions, func(i, j int) bool {
		return report.Positions[i].Pos.Less(report.Positions[j].Pos)
	})
	return report
}

// ReconcileAll reconciles a batch of verdicts against one call stream.
// Calls whose sequence id matches no verdict are returned as orphans.
func ReconcileAll(verdicts []*analysis.Verdict, calls []Call) (reports []*Report, orphans []Call) {
	known := make(map[string]bool, len(verdicts))
	for _, v := range verdicts {
		known[v.SequenceID] = true
	}
	for _, call := range calls {
		if !known[call.SequenceID] {
			orphans = append(orphans, call)
		}
	}
	for _, v := range verdicts {
		reports = append(reports, Reconcile(v, calls))
	}
	return reports, orphans
}
