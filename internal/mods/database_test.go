package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trnamod/trnamod/internal/sprinzl"
)

func TestEukaryoticCatalogueBuilds(t *testing.T) {
	db := Eukaryotic()
	assert.Equal(t, 12, db.Len())

	// Every entry keeps the catalogue invariants.
	for _, m := range db.All() {
		assert.False(t, m.Incompatible.Contains(m.Parent), "%s lists its parent as incompatible", m.ShortName)
		assert.False(t, m.Incompatible.Empty(), "%s has an empty incompatible set", m.ShortName)
		assert.NotEmpty(t, m.Positions, "%s has no expected positions", m.ShortName)
	}
}

func TestPositionIndexMatchesExpectedPositions(t *testing.T) {
	db := Eukaryotic()

	// Every modification appears under every position it lists, and
	// nowhere else.
	for _, m := range db.All() {
		for _, p := range m.Positions {
			assert.Contains(t, db.ByPosition(p), m, "%s missing from index at %s", m.ShortName, p)
		}
	}
	for _, p := range db.Positions() {
		for _, m := range db.ByPosition(p) {
			assert.True(t, m.ExpectedAt(p), "%s indexed at %s but does not expect it", m.ShortName, p)
		}
	}
}

func TestWobblePositionLookup(t *testing.T) {
	db := Eukaryotic()

	at34 := db.ByPosition(sprinzl.MustParse("34"))
	names := make([]string, len(at34))
	for i, m := range at34 {
		names[i] = m.ShortName
	}
	assert.Contains(t, names, "I")
	assert.Contains(t, names, "Q")
	for _, m := range at34 {
		assert.Equal(t, IsotypeSpecific, m.Conservation)
	}
}

func TestByNameAliases(t *testing.T) {
	db := Eukaryotic()

	psi, ok := db.ByName("Psi")
	require.True(t, ok)
	byAlias, ok := db.ByName("Y")
	require.True(t, ok)
	assert.Same(t, psi, byAlias)

	rt, ok := db.ByName("rT")
	require.True(t, ok)
	assert.Equal(t, "m5U", rt.ShortName)

	_, ok = db.ByName("nope")
	assert.False(t, ok)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	db := Eukaryotic()
	all := db.All()
	require.Equal(t, 12, len(all))
	assert.Equal(t, "Psi", all[0].ShortName)
	assert.Equal(t, "m7G", all[11].ShortName)
}

func validEntry() Modification {
	return Modification{
		ShortName:    "m6A",
		Name:         "N6-methyladenosine",
		Parent:       BaseA,
		Incompatible: AllExcept(BaseA),
		Positions:    positions("58"),
		Conservation: Variable,
	}
}

func TestNewDatabaseRejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Modification)
		code   BuildErrorCode
	}{
		{
			name:   "empty short name",
			mutate: func(m *Modification) { m.ShortName = "" },
			code:   ErrCodeEmptyName,
		},
		{
			name:   "parent in incompatible set",
			mutate: func(m *Modification) { m.Incompatible = NewBaseSet(BaseA, BaseG) },
			code:   ErrCodeParentIncompatible,
		},
		{
			name:   "empty incompatible set",
			mutate: func(m *Modification) { m.Incompatible = 0 },
			code:   ErrCodeNoIncompatible,
		},
		{
			name:   "no expected positions",
			mutate: func(m *Modification) { m.Positions = nil },
			code:   ErrCodeNoPositions,
		},
		{
			name:   "duplicate expected position",
			mutate: func(m *Modification) { m.Positions = positions("58", "58") },
			code:   ErrCodeBadPosition,
		},
		{
			name:   "invalid parent",
			mutate: func(m *Modification) { m.Parent = Base('N') },
			code:   ErrCodeBadParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(&entry)
			_, err := NewDatabase([]Modification{entry})
			require.Error(t, err)
			var buildErr *BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, tt.code, buildErr.Code)
		})
	}
}

func TestNewDatabaseRejectsDuplicateNames(t *testing.T) {
	a := validEntry()
	b := validEntry()
	b.Conservation = Universal // disagreeing classification, same name
	_, err := NewDatabase([]Modification{a, b})
	require.Error(t, err)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, ErrCodeDuplicateName, buildErr.Code)
}

func TestMergeOverridesAndAppends(t *testing.T) {
	db := Eukaryotic()

	override := Modification{
		ShortName:    "Psi",
		Name:         "pseudouridine",
		Parent:       BaseU,
		Incompatible: AllExcept(BaseU),
		Positions:    positions("55", "38"),
		Conservation: Universal,
	}
	extra := validEntry()

	merged, err := db.Merge([]Modification{override, extra})
	require.NoError(t, err)
	assert.Equal(t, 13, merged.Len())

	psi, ok := merged.ByName("Psi")
	require.True(t, ok)
	assert.Len(t, psi.Positions, 2)
	// Positions are normalized to ascending order at build time.
	assert.Equal(t, "38", psi.Positions[0].String())

	assert.NotEmpty(t, merged.ByPosition(sprinzl.MustParse("38")))

	// The original database is untouched.
	orig, _ := db.ByName("Psi")
	assert.Len(t, orig.Positions, 1)
}
