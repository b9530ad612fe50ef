package sprinzl

import "fmt"

// MapErrorCode categorizes mapping failures.
type MapErrorCode string

const (
	// ErrCodeColumnRange indicates a trace event referenced a consensus
	// column outside the model.
	ErrCodeColumnRange MapErrorCode = "COLUMN_OUT_OF_RANGE"

	// ErrCodeColumnOrder indicates trace events were not in ascending
	// consensus-column order.
	ErrCodeColumnOrder MapErrorCode = "COLUMN_ORDER"

	// ErrCodeColumnDuplicate indicates the same consensus column was
	// referenced by more than one match or delete event.
	ErrCodeColumnDuplicate MapErrorCode = "COLUMN_DUPLICATE"

	// ErrCodeColumnGap indicates a consensus column inside the aligned span
	// that was neither matched nor deleted.
	ErrCodeColumnGap MapErrorCode = "COLUMN_GAP"

	// ErrCodeBadEvent indicates a trace event with an unknown kind or a
	// match/insert without an observed base.
	ErrCodeBadEvent MapErrorCode = "BAD_EVENT"

	// ErrCodeBadReference indicates a malformed reference table.
	ErrCodeBadReference MapErrorCode = "BAD_REFERENCE"
)

// MapError is a recoverable mapping failure tagged with the offending
// consensus column. Callers decide whether to skip the sequence or abort
// the batch.
type MapError struct {
	Code    MapErrorCode
	Column  int
	Message string
}

func (e *MapError) Error() string {
	return fmt.Sprintf("%s: %s (column=%d)", e.Code, e.Message, e.Column)
}
