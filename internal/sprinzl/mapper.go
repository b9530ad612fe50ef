package sprinzl

// EventKind discriminates alignment trace events.
type EventKind int

const (
	// EventMatch aligns an observed base to a consensus column.
	EventMatch EventKind = iota
	// EventInsert places an observed base between consensus columns.
	EventInsert
	// EventDelete marks a consensus column with no observed base.
	EventDelete
)

func (k EventKind) String() string {
	switch k {
	case EventMatch:
		return "match"
	case EventInsert:
		return "insert"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// TraceEvent is one step of a covariance-model alignment trace. Column is
// the 1-based consensus column for match and delete events; for insert
// events it is the consensus column the insertion follows (0 for an
// insertion before the first column). Base is the observed base character
// for match and insert events.
type TraceEvent struct {
	Kind   EventKind
	Column int
	Base   byte
}

// EntryStatus classifies a mapping entry.
type EntryStatus int

const (
	// StatusAligned is a consensus match or a registered insertion: the
	// entry has both a position and an observed base.
	StatusAligned EntryStatus = iota
	// StatusMissing is a deleted consensus position: present in the model,
	// absent from the hit. It carries no base but stays in the output as an
	// explicit gap.
	StatusMissing
	// StatusUnmapped is an insertion at a point with no registered
	// insertion scheme: it carries a base but no canonical position.
	StatusUnmapped
	// StatusNotCovered is a consensus position outside the aligned subrange
	// of a partial hit. Never scored, never penalized.
	StatusNotCovered
)

func (s EntryStatus) String() string {
	switch s {
	case StatusAligned:
		return "aligned"
	case StatusMissing:
		return "missing"
	case StatusUnmapped:
		return "unmapped"
	case StatusNotCovered:
		return "not_covered"
	default:
		return "unknown"
	}
}

// Entry is one position of a per-sequence mapping. Pos is invalid for
// StatusUnmapped entries; Base is zero for entries without an observed base.
type Entry struct {
	Status EntryStatus
	Pos    Position
	Column int
	Base   byte
}

// HasBase reports whether the entry carries an observed base.
func (e Entry) HasBase() bool {
	return e.Base != 0
}

// Mapping is the per-hit correspondence between alignment columns and
// Sprinzl positions. Entries are ordered by canonical position, with
// unmapped insertions interleaved at their point of occurrence. Every
// consensus position of the reference appears exactly once as aligned,
// missing, or not covered.
type Mapping struct {
	Entries []Entry
}

// Aligned returns the entries that carry both a position and a base.
func (m *Mapping) Aligned() []Entry {
	var out []Entry
	for _, e := range m.Entries {
		if e.Status == StatusAligned {
			out = append(out, e)
		}
	}
	return out
}

// Missing returns the deleted consensus positions.
func (m *Mapping) Missing() []Position {
	var out []Position
	for _, e := range m.Entries {
		if e.Status == StatusMissing {
			out = append(out, e.Pos)
		}
	}
	return out
}

// UnmappedCount returns the number of insertions that had no registered
// insertion point.
func (m *Mapping) UnmappedCount() int {
	n := 0
	for _, e := range m.Entries {
		if e.Status == StatusUnmapped {
			n++
		}
	}
	return n
}

// Map walks an alignment trace in consensus order and produces the
// column-to-position mapping for one hit.
//
// Match events take the pre-registered position of their column. Insert
// events after a column with a registered insertion point take the next
// lettered sub-position in trace order; inserts elsewhere become unmapped
// entries. Delete events become missing entries. Consensus columns outside
// the span of the trace become not-covered entries.
//
// Errors are recoverable per sequence and carry the offending column.
func Map(ref *Reference, events []TraceEvent) (*Mapping, error) {
	var walked []Entry
	lastCol := 0
	insOrd := 0
	minCol, maxCol := 0, 0

	for _, ev := range events {
		switch ev.Kind {
		case EventMatch, EventDelete:
			if ev.Column < 1 || ev.Column > ref.Len() {
				return nil, &MapError{Code: ErrCodeColumnRange, Column: ev.Column, Message: "consensus column outside model"}
			}
			if ev.Column == lastCol {
				return nil, &MapError{Code: ErrCodeColumnDuplicate, Column: ev.Column, Message: "consensus column referenced twice"}
			}
			if ev.Column < lastCol {
				return nil, &MapError{Code: ErrCodeColumnOrder, Column: ev.Column, Message: "trace events out of consensus order"}
			}
			if lastCol != 0 && ev.Column != lastCol+1 {
				return nil, &MapError{Code: ErrCodeColumnGap, Column: ev.Column, Message: "consensus column skipped by trace"}
			}
			pos, _ := ref.PositionAt(ev.Column)
			if ev.Kind == EventMatch {
				if ev.Base == 0 {
					return nil, &MapError{Code: ErrCodeBadEvent, Column: ev.Column, Message: "match event without observed base"}
				}
				walked = append(walked, Entry{Status: StatusAligned, Pos: pos, Column: ev.Column, Base: ev.Base})
			} else {
				walked = append(walked, Entry{Status: StatusMissing, Pos: pos, Column: ev.Column})
			}
			if minCol == 0 {
				minCol = ev.Column
			}
			maxCol = ev.Column
			lastCol = ev.Column
			insOrd = 0

		case EventInsert:
			if ev.Column < 0 || ev.Column > ref.Len() {
				return nil, &MapError{Code: ErrCodeColumnRange, Column: ev.Column, Message: "insertion anchor outside model"}
			}
			if ev.Column != lastCol {
				return nil, &MapError{Code: ErrCodeColumnOrder, Column: ev.Column, Message: "insertion anchored away from current column"}
			}
			if ev.Base == 0 {
				return nil, &MapError{Code: ErrCodeBadEvent, Column: ev.Column, Message: "insert event without observed base"}
			}
			if ev.Column >= 1 && ref.AllowsInsertion(ev.Column) {
				anchor, _ := ref.PositionAt(ev.Column)
				insOrd++
				pos := Position{Number: anchor.Number, Ordinal: insOrd}
				walked = append(walked, Entry{Status: StatusAligned, Pos: pos, Column: ev.Column, Base: ev.Base})
			} else {
				walked = append(walked, Entry{Status: StatusUnmapped, Column: ev.Column, Base: ev.Base})
			}

		default:
			return nil, &MapError{Code: ErrCodeBadEvent, Column: ev.Column, Message: "unknown trace event kind"}
		}
	}

	// Partial hits: consensus columns outside [minCol, maxCol] are not
	// covered. A trace with no match or delete events covers nothing.
	m := &Mapping{}
	if minCol == 0 {
		for col := 1; col <= ref.Len(); col++ {
			pos, _ := ref.PositionAt(col)
			m.Entries = append(m.Entries, Entry{Status: StatusNotCovered, Pos: pos, Column: col})
		}
		m.Entries = append(m.Entries, walked...)
		return m, nil
	}
	for col := 1; col < minCol; col++ {
		pos, _ := ref.PositionAt(col)
		m.Entries = append(m.Entries, Entry{Status: StatusNotCovered, Pos: pos, Column: col})
	}
	m.Entries = append(m.Entries, walked...)
	for col := maxCol + 1; col <= ref.Len(); col++ {
		pos, _ := ref.PositionAt(col)
		m.Entries = append(m.Entries, Entry{Status: StatusNotCovered, Pos: pos, Column: col})
	}
	return m, nil
}
