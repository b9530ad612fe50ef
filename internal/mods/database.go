package mods

import (
	"sort"

	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Database is the immutable modification catalogue, indexed by Sprinzl
// position and by short name. Build it once with NewDatabase and hand the
// value to every analysis; no synchronization is needed afterwards.
type Database struct {
	order   []*Modification
	byName  map[string]*Modification
	byPos   map[sprinzl.Position][]*Modification
	aliases map[string]string
}

// NewDatabase validates entries and builds the catalogue. Entries keep
// their given order for All(); per-position lists keep entry order too.
//
// Validation is fatal: a catalogue entry whose incompatible set
// contains its own parent, an empty incompatible set, a modification with
// no expected positions, or a duplicate short name all reject the whole
// database before any analysis can run.
func NewDatabase(entries []Modification) (*Database, error) {
	db := &Database{
		byName:  make(map[string]*Modification, len(entries)),
		byPos:   make(map[sprinzl.Position][]*Modification),
		aliases: defaultAliases(),
	}

	for i := range entries {
		m := entries[i]
		if m.ShortName == "" {
			return nil, &BuildError{Code: ErrCodeEmptyName, Message: "modification without short name"}
		}
		if _, dup := db.byName[m.ShortName]; dup {
			return nil, &BuildError{Code: ErrCodeDuplicateName, Modification: m.ShortName, Message: "short name already in catalogue"}
		}
		if !m.Parent.Valid() {
			return nil, &BuildError{Code: ErrCodeBadParent, Modification: m.ShortName, Message: "parent base is not one of A, C, G, U"}
		}
		if m.Incompatible.Empty() {
			return nil, &BuildError{Code: ErrCodeNoIncompatible, Modification: m.ShortName, Message: "incompatible-base set is empty"}
		}
		if m.Incompatible.Contains(m.Parent) {
			return nil, &BuildError{Code: ErrCodeParentIncompatible, Modification: m.ShortName, Message: "parent base listed as incompatible"}
		}
		if len(m.Positions) == 0 {
			return nil, &BuildError{Code: ErrCodeNoPositions, Modification: m.ShortName, Message: "no expected positions"}
		}
		seen := make(map[sprinzl.Position]bool, len(m.Positions))
		for _, p := range m.Positions {
			if !p.Valid() {
				return nil, &BuildError{Code: ErrCodeBadPosition, Modification: m.ShortName, Message: "invalid expected position " + p.String()}
			}
			if seen[p] {
				return nil, &BuildError{Code: ErrCodeBadPosition, Modification: m.ShortName, Message: "duplicate expected position " + p.String()}
			}
			seen[p] = true
		}
		stored := m
		stored.Positions = append([]sprinzl.Position(nil), m.Positions...)
		sort.Slice(stored.Positions, func(a, b int) bool { return stored.Positions[a].Less(stored.Positions[b]) })
		db.order = append(db.order, &stored)
		db.byName[m.ShortName] = &stored
		for _, p := range m.Positions {
			db.byPos[p] = append(db.byPos[p], &stored)
		}
	}

	for alias := range db.aliases {
		if _, shadowed := db.byName[alias]; shadowed {
			return nil, &BuildError{Code: ErrCodeAliasCollision, Modification: alias, Message: "alias collides with catalogue entry"}
		}
	}

	return db, nil
}

// defaultAliases maps common alternate spellings to catalogue short names.
func defaultAliases() map[string]string {
	return map[string]string{
		"Y":   "Psi",
		"psi": "Psi",
		"rT":  "m5U",
		"T":   "m5U",
	}
}

// ByPosition returns the modifications expected at a position, in catalogue
// order. The returned slice is shared; callers must not mutate it.
func (db *Database) ByPosition(p sprinzl.Position) []*Modification {
	return db.byPos[p]
}

// ByName looks up a modification by short name, falling back to known
// aliases ("Y" for "Psi", "rT" for "m5U").
func (db *Database) ByName(name string) (*Modification, bool) {
	if m, ok := db.byName[name]; ok {
		return m, true
	}
	if target, ok := db.aliases[name]; ok {
		m, ok := db.byName[target]
		return m, ok
	}
	return nil, false
}

// All returns every modification in catalogue insertion order. The returned
// slice is shared; callers must not mutate it.
func (db *Database) All() []*Modification {
	return db.order
}

// Len returns the number of catalogue entries.
func (db *Database) Len() int {
	return len(db.order)
}

// Positions returns every position with at least one expectation, in
// canonical order.
func (db *Database) Positions() []sprinzl.Position {
	out := make([]sprinzl.Position, 0, len(db.byPos))
	for p := range db.byPos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Merge builds a new database from this catalogue plus extra entries.
// Entries whose short name matches an existing one replace it in place;
// new names append. The receiver is left untouched.
func (db *Database) Merge(extra []Modification) (*Database, error) {
	merged := make([]Modification, 0, len(db.order)+len(extra))
	replaced := make(map[string]int, len(db.order))
	for _, m := range db.order {
		replaced[m.ShortName] = len(merged)
		merged = append(merged, *m)
	}
	for _, m := range extra {
		if idx, ok := replaced[m.ShortName]; ok {
			merged[idx] = m
			continue
		}
		replaced[m.ShortName] = len(merged)
		merged = append(merged, m)
	}
	return NewDatabase(merged)
}
