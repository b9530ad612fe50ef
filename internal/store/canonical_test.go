package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trnamod/trnamod/internal/analysis"
	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

func TestMarshalCanonical(t *testing.T) {
	t.Run("keys sorted", func(t *testing.T) {
		got, err := MarshalCanonical(map[string]any{
			"zeta":  int64(1),
			"alpha": "x",
			"mid":   true,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"alpha":"x","mid":true,"zeta":1}`, string(got))
	})

	t.Run("no html escaping", func(t *testing.T) {
		got, err := MarshalCanonical("a<b>&c")
		require.NoError(t, err)
		assert.Equal(t, `"a<b>&c"`, string(got))
	})

	t.Run("nested arrays and objects", func(t *testing.T) {
		got, err := MarshalCanonical(map[string]any{
			"list": []any{int64(1), "two", map[string]any{"b": false, "a": int64(0)}},
		})
		require.NoError(t, err)
		assert.Equal(t, `{"list":[1,"two",{"a":0,"b":false}]}`, string(got))
	})

	t.Run("floats forbidden", func(t *testing.T) {
		_, err := MarshalCanonical(map[string]any{"score": 0.9})
		assert.Error(t, err)
	})

	t.Run("null forbidden", func(t *testing.T) {
		_, err := MarshalCanonical(map[string]any{"x": nil})
		assert.Error(t, err)
	})

	t.Run("line separator not escaped", func(t *testing.T) {
		got, err := MarshalCanonical("a b")
		require.NoError(t, err)
		assert.Equal(t, "\"a b\"", string(got))
	})

	t.Run("escaped backslash before u2028 text preserved", func(t *testing.T) {
		got, err := MarshalCanonical(`a b`)
		require.NoError(t, err)
		assert.Equal(t, `"a\\u2028b"`, string(got))
	})
}

func TestScoreMilli(t *testing.T) {
	assert.Equal(t, int64(1000), ScoreMilli(1.0))
	assert.Equal(t, int64(900), ScoreMilli(0.9))
	assert.Equal(t, int64(0), ScoreMilli(0))
	// 8/9 rounds to nearest milli
	assert.Equal(t, int64(889), ScoreMilli(8.0/9.0))
}

func testVerdict(seqID string) analysis.Verdict {
	return analysis.Verdict{
		SequenceID:      seqID,
		Scorable:        true,
		Score:           0.9,
		Odd:             true,
		ScoredPositions: 10,
		Checks: []analysis.Check{
			{Pos: sprinzl.MustParse("55"), Observed: mods.BaseU, Expected: []string{"Psi"}, Consistent: true},
		},
		Incompatibilities: []analysis.Incompatibility{
			{
				Pos:          sprinzl.MustParse("34"),
				Modification: "I",
				Observed:     mods.BaseU,
				Parent:       mods.BaseA,
				Incompatible: mods.NewBaseSet(mods.BaseC, mods.BaseG, mods.BaseU),
				Conservation: mods.IsotypeSpecific,
			},
		},
		IncompatiblePositions: 1,
		Covered: []analysis.PositionBase{
			{Pos: sprinzl.MustParse("34"), Base: mods.BaseU},
			{Pos: sprinzl.MustParse("55"), Base: mods.BaseU},
		},
		Missing: []sprinzl.Position{sprinzl.MustParse("20a")},
	}
}

func TestVerdictHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		h1 := MustVerdictHash(testVerdict("trna-1"))
		h2 := MustVerdictHash(testVerdict("trna-1"))
		assert.Equal(t, h1, h2)
		assert.Len(t, h1, 64)
	})

	t.Run("sequence id changes hash", func(t *testing.T) {
		assert.NotEqual(t,
			MustVerdictHash(testVerdict("trna-1")),
			MustVerdictHash(testVerdict("trna-2")))
	})

	t.Run("score changes hash at milli granularity", func(t *testing.T) {
		a := testVerdict("trna-1")
		b := testVerdict("trna-1")
		b.Score = 0.901
		assert.NotEqual(t, MustVerdictHash(a), MustVerdictHash(b))

		// Sub-milli differences collapse to the same identity.
		c := testVerdict("trna-1")
		c.Score = 0.9000004
		assert.Equal(t, MustVerdictHash(a), MustVerdictHash(c))
	})
}
