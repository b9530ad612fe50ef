package modkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trnamod/trnamod/internal/analysis"
	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

func testVerdict() *analysis.Verdict {
	return &analysis.Verdict{
		SequenceID: "trna-1",
		Scorable:   true,
		Score:      1.0,
		Covered: []analysis.PositionBase{
			{Pos: sprinzl.MustParse("33"), Base: mods.BaseU},
			{Pos: sprinzl.MustParse("55"), Base: mods.BaseU},
			{Pos: sprinzl.MustParse("58"), Base: mods.BaseA},
		},
		Checks: []analysis.Check{
			{Pos: sprinzl.MustParse("55"), Observed: mods.BaseU, Expected: []string{"Psi"}, Consistent: true},
			{Pos: sprinzl.MustParse("58"), Observed: mods.BaseA, Expected: []string{"m1A"}, Consistent: true},
		},
	}
}

func TestReconcileAgreementClasses(t *testing.T) {
	v := testVerdict()
	calls := []Call{
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("55"), Code: "17802", Probability: 0.95},
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("33"), Code: "a", Probability: 0.4},
	}

	report := Reconcile(v, calls)
	require.Len(t, report.Positions, 3)

	byPos := make(map[string]PositionAgreement)
	for _, pa := range report.Positions {
		byPos[pa.Pos.String()] = pa
	}

	// External call matching an analyzer-expected modification.
	assert.Equal(t, ExpectedAndObserved, byPos["55"].Agreement)
	require.NotNil(t, byPos["55"].Call)
	assert.InDelta(t, 0.95, byPos["55"].Call.Probability, 1e-9)
	assert.Equal(t, []string{"Psi"}, byPos["55"].Expected)

	// Expected position without an external call.
	assert.Equal(t, ExpectedButAbsent, byPos["58"].Agreement)
	assert.Nil(t, byPos["58"].Call)

	// Call at a position with no expectation.
	assert.Equal(t, ObservedButUnexpected, byPos["33"].Agreement)

	assert.Equal(t, 1, report.Counts["expected_and_observed"])
	assert.Equal(t, 1, report.Counts["expected_but_absent"])
	assert.Equal(t, 1, report.Counts["observed_but_unexpected"])
	assert.Zero(t, report.Counts["neither_side_has_signal"])
}

func TestReconcileNeitherSideHasSignal(t *testing.T) {
	v := testVerdict()
	report := Reconcile(v, nil)

	byPos := make(map[string]PositionAgreement)
	for _, pa := range report.Positions {
		byPos[pa.Pos.String()] = pa
	}
	assert.Equal(t, NeitherSideHasSignal, byPos["33"].Agreement)
	assert.Equal(t, ExpectedButAbsent, byPos["55"].Agreement)
}

func TestReconcileUnmatchedCall(t *testing.T) {
	v := testVerdict()
	calls := []Call{
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("12"), Code: "a", Probability: 0.7},
	}

	report := Reconcile(v, calls)
	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, "12", report.Unmatched[0].Pos.String())
}

func TestReconcileDuplicateCallsKeepHighestProbability(t *testing.T) {
	v := testVerdict()
	calls := []Call{
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("55"), Probability: 0.4},
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("55"), Probability: 0.9},
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("55"), Probability: 0.2},
	}

	report := Reconcile(v, calls)
	for _, pa := range report.Positions {
		if pa.Pos.String() == "55" {
			require.NotNil(t, pa.Call)
			assert.InDelta(t, 0.9, pa.Call.Probability, 1e-9)
		}
	}
}

func TestReconcileAllOrphans(t *testing.T) {
	v := testVerdict()
	calls := []Call{
		{SequenceID: "trna-1", Pos: sprinzl.MustParse("55"), Probability: 0.9},
		{SequenceID: "unknown-seq", Pos: sprinzl.MustParse("55"), Probability: 0.9},
	}

	reports, orphans := ReconcileAll([]*analysis.Verdict{v}, calls)
	require.Len(t, reports, 1)
	require.Len(t, orphans, 1)
	assert.Equal(t, "unknown-seq", orphans[0].SequenceID)
}

func TestReconcilePositionsSorted(t *testing.T) {
	v := testVerdict()
	report := Reconcile(v, nil)
	for i := 1; i < len(report.Positions); i++ {
		assert.True(t, report.Positions[i-1].Pos.Less(report.Positions[i].Pos))
	}
}
