package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// alaConsistent assigns the parent base of every expectation that applies
// to tRNA-Ala: dihydrouridine in the D-loop, inosine 34, m1G 37, m7G 46,
// m5C 48, m5U 54, Psi 55, m1A 58.
func alaConsistent() map[int]byte {
	return map[int]byte{
		16: 'U', 17: 'U', 20: 'U',
		34: 'A', 37: 'G', 46: 'G', 48: 'C',
		54: 'U', 55: 'U', 58: 'A',
	}
}

// traceWith builds a full-length match trace, observing the given bases at
// the given positions and 'C' everywhere else.
func traceWith(bases map[int]byte) []sprinzl.TraceEvent {
	events := make([]sprinzl.TraceEvent, 0, sprinzl.MaxNumber)
	for col := 1; col <= sprinzl.MaxNumber; col++ {
		b, ok := bases[col]
		if !ok {
			b = 'C'
		}
		events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventMatch, Column: col, Base: b})
	}
	return events
}

func mapTrace(t *testing.T, events []sprinzl.TraceEvent) *sprinzl.Mapping {
	t.Helper()
	m, err := sprinzl.Map(sprinzl.Standard(), events)
	require.NoError(t, err)
	return m
}

func TestAnalyzeFullyConsistent(t *testing.T) {
	db := mods.Eukaryotic()
	mapping := mapTrace(t, traceWith(alaConsistent()))

	v := Analyze(db, mapping, "trna-ala-1", Options{Threshold: 1.0, Isotype: "Ala"})

	assert.True(t, v.Scorable)
	assert.Equal(t, 1.0, v.Score)
	assert.False(t, v.Odd)
	assert.Equal(t, 10, v.ScoredPositions)
	assert.Zero(t, v.IncompatiblePositions)
	assert.Empty(t, v.Incompatibilities)
	for _, c := range v.Checks {
		assert.True(t, c.Consistent, "position %s unexpectedly inconsistent", c.Pos)
	}
}

func TestAnalyzeInosineViolation(t *testing.T) {
	db := mods.Eukaryotic()
	bases := alaConsistent()
	bases[34] = 'U' // inosine derives from A; U precludes it
	mapping := mapTrace(t, traceWith(bases))

	v := Analyze(db, mapping, "trna-ala-2", Options{Threshold: 0.95, Isotype: "Ala"})

	require.Len(t, v.Incompatibilities, 1)
	inc := v.Incompatibilities[0]
	assert.Equal(t, "34", inc.Pos.String())
	assert.Equal(t, "I", inc.Modification)
	assert.Equal(t, mods.BaseU, inc.Observed)
	assert.Equal(t, mods.BaseA, inc.Parent)
	assert.True(t, inc.Incompatible.Contains(mods.BaseU))
	assert.Equal(t, mods.IsotypeSpecific, inc.Conservation)

	assert.Equal(t, 10, v.ScoredPositions)
	assert.Equal(t, 1, v.IncompatiblePositions)
	assert.InDelta(t, 0.9, v.Score, 1e-9)
	assert.True(t, v.Odd)
}

func TestAnalyzeMultiModPositionCountsOnce(t *testing.T) {
	db := mods.Eukaryotic()
	// Without an isotype filter, position 37 expects t6A and i6A (parent A)
	// alongside m1G (parent G): no base satisfies all three. The position
	// still counts as one incompatible position in the aggregate.
	bases := alaConsistent()
	bases[32] = 'C'
	mapping := mapTrace(t, traceWith(bases))

	v := Analyze(db, mapping, "trna-x", Options{Threshold: 0.5})

	perPos := make(map[string]int)
	for _, inc := range v.Incompatibilities {
		perPos[inc.Pos.String()]++
	}
	assert.GreaterOrEqual(t, perPos["37"], 1)

	// Incompatible positions never exceed scored positions even when a
	// single position accumulates several violated modifications.
	assert.LessOrEqual(t, v.IncompatiblePositions, v.ScoredPositions)

	incompatible := 0
	for _, c := range v.Checks {
		if !c.Consistent {
			incompatible++
		}
	}
	assert.Equal(t, incompatible, v.IncompatiblePositions)
}

func TestAnalyzeDeletionExcludedFromDenominator(t *testing.T) {
	db := mods.Eukaryotic()
	events := make([]sprinzl.TraceEvent, 0, sprinzl.MaxNumber)
	bases := alaConsistent()
	for col := 1; col <= sprinzl.MaxNumber; col++ {
		if col == 37 {
			events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventDelete, Column: col})
			continue
		}
		b, ok := bases[col]
		if !ok {
			b = 'C'
		}
		events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventMatch, Column: col, Base: b})
	}
	mapping := mapTrace(t, events)

	v := Analyze(db, mapping, "trna-del", Options{Threshold: 1.0, Isotype: "Ala"})

	require.Len(t, v.Missing, 1)
	assert.Equal(t, "37", v.Missing[0].String())
	assert.Equal(t, 9, v.ScoredPositions)
	assert.Equal(t, 1.0, v.Score)
}

func TestAnalyzeNotScorable(t *testing.T) {
	db := mods.Eukaryotic()
	// Partial hit over the acceptor stem only: no expectations there.
	var events []sprinzl.TraceEvent
	for col := 1; col <= 10; col++ {
		events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventMatch, Column: col, Base: 'G'})
	}
	mapping := mapTrace(t, events)

	v := Analyze(db, mapping, "trna-short", Options{Threshold: 0.9})

	assert.False(t, v.Scorable)
	assert.Zero(t, v.Score)
	assert.False(t, v.Odd)
	assert.Zero(t, v.ScoredPositions)
	assert.Len(t, v.Covered, 10)
}

func TestAnalyzeSkipsAmbiguousBases(t *testing.T) {
	db := mods.Eukaryotic()
	bases := alaConsistent()
	bases[55] = 'N'
	mapping := mapTrace(t, traceWith(bases))

	v := Analyze(db, mapping, "trna-n", Options{Threshold: 1.0, Isotype: "Ala"})

	// Position 55 is neither scored nor penalized.
	assert.Equal(t, 9, v.ScoredPositions)
	assert.Equal(t, 1.0, v.Score)
	for _, c := range v.Checks {
		assert.NotEqual(t, "55", c.Pos.String())
	}
}

func TestAnalyzeIsotypeFiltering(t *testing.T) {
	db := mods.Eukaryotic()
	bases := alaConsistent()
	bases[34] = 'G' // queuosine parent; violates inosine
	mapping := mapTrace(t, traceWith(bases))

	// For tRNA-His, position 34 expects queuosine, not inosine: G is
	// consistent.
	his := Analyze(db, mapping, "trna-his", Options{Threshold: 1.0, Isotype: "His"})
	for _, inc := range his.Incompatibilities {
		assert.NotEqual(t, "34", inc.Pos.String())
	}

	// For tRNA-Ala the same base violates inosine.
	ala := Analyze(db, mapping, "trna-ala", Options{Threshold: 1.0, Isotype: "Ala"})
	found := false
	for _, inc := range ala.Incompatibilities {
		if inc.Pos.String() == "34" && inc.Modification == "I" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzeUnmappedInsertionSurfaced(t *testing.T) {
	db := mods.Eukaryotic()
	var events []sprinzl.TraceEvent
	bases := alaConsistent()
	for col := 1; col <= sprinzl.MaxNumber; col++ {
		b, ok := bases[col]
		if !ok {
			b = 'C'
		}
		events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventMatch, Column: col, Base: b})
		if col == 30 {
			events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventInsert, Column: 30, Base: 'A'})
		}
	}
	mapping := mapTrace(t, events)

	v := Analyze(db, mapping, "trna-ins", Options{Threshold: 1.0, Isotype: "Ala"})
	assert.Equal(t, 1, v.UnmappedInsertions)
	assert.Equal(t, 10, v.ScoredPositions)
}
