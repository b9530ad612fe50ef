package sprinzl

// Reference is the static consensus-to-Sprinzl correspondence for a
// covariance model: which canonical position each consensus column carries,
// and which columns permit lettered insertions after them.
//
// A Reference is built once and never mutated, so it is safe to share across
// concurrent mappings.
type Reference struct {
	columns     []Position
	insertAfter map[int]bool
	byPosition  map[Position]int
}

// NewReference builds a reference from consensus columns in order (column 1
// first) and the set of columns that permit insertions after them.
func NewReference(columns []Position, insertAfter []int) (*Reference, error) {
	r := &Reference{
		columns:     make([]Position, len(columns)),
		insertAfter: make(map[int]bool, len(insertAfter)),
		byPosition:  make(map[Position]int, len(columns)),
	}
	prev := Position{}
	for i, p := range columns {
		if !p.Valid() {
			return nil, &MapError{Code: ErrCodeBadReference, Column: i + 1, Message: "invalid position in reference table"}
		}
		if i > 0 && p.Compare(prev) <= 0 {
			return nil, &MapError{Code: ErrCodeBadReference, Column: i + 1, Message: "reference columns not in ascending position order"}
		}
		if _, dup := r.byPosition[p]; dup {
			return nil, &MapError{Code: ErrCodeBadReference, Column: i + 1, Message: "duplicate position in reference table"}
		}
		r.columns[i] = p
		r.byPosition[p] = i + 1
		prev = p
	}
	for _, col := range insertAfter {
		if col < 1 || col > len(columns) {
			return nil, &MapError{Code: ErrCodeBadReference, Column: col, Message: "insertion point outside consensus"}
		}
		r.insertAfter[col] = true
	}
	return r, nil
}

// Len returns the number of consensus columns.
func (r *Reference) Len() int {
	return len(r.columns)
}

// PositionAt returns the canonical position carried by a 1-based consensus
// column.
func (r *Reference) PositionAt(col int) (Position, bool) {
	if col < 1 || col > len(r.columns) {
		return Position{}, false
	}
	return r.columns[col-1], true
}

// ColumnOf returns the 1-based consensus column carrying a position.
func (r *Reference) ColumnOf(p Position) (int, bool) {
	col, ok := r.byPosition[p]
	return col, ok
}

// AllowsInsertion reports whether lettered insertions are registered after
// the given consensus column.
func (r *Reference) AllowsInsertion(afterCol int) bool {
	return r.insertAfter[afterCol]
}

// Standard returns the reference for the canonical 76-column tRNA consensus.
// Columns 1-76 carry positions 1-76 in order. Insertions are registered in
// the D-loop after positions 17 and 20 (yielding 17a, 20a, 20b, ...) and in
// the variable arm after position 45.
func Standard() *Reference {
	columns := make([]Position, MaxNumber)
	for i := range columns {
		columns[i] = Position{Number: i + 1}
	}
	r, err := NewReference(columns, []int{17, 20, 45})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return r
}
