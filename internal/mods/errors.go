package mods

import "fmt"

// BuildErrorCode categorizes catalogue construction failures.
type BuildErrorCode string

const (
	// ErrCodeEmptyName indicates a modification without a short name.
	ErrCodeEmptyName BuildErrorCode = "EMPTY_NAME"

	// ErrCodeDuplicateName indicates two modifications with the same short
	// name.
	ErrCodeDuplicateName BuildErrorCode = "DUPLICATE_NAME"

	// ErrCodeParentIncompatible indicates a modification whose incompatible
	// set contains its own parent base.
	ErrCodeParentIncompatible BuildErrorCode = "PARENT_IN_INCOMPATIBLE_SET"

	// ErrCodeNoIncompatible indicates an empty incompatible set.
	ErrCodeNoIncompatible BuildErrorCode = "EMPTY_INCOMPATIBLE_SET"

	// ErrCodeNoPositions indicates a modification with no expected
	// positions.
	ErrCodeNoPositions BuildErrorCode = "NO_EXPECTED_POSITIONS"

	// ErrCodeBadPosition indicates an invalid or duplicate expected
	// position.
	ErrCodeBadPosition BuildErrorCode = "BAD_POSITION"

	// ErrCodeBadParent indicates an invalid parent base.
	ErrCodeBadParent BuildErrorCode = "BAD_PARENT_BASE"

	// ErrCodeBadConservation indicates an unknown conservation class.
	ErrCodeBadConservation BuildErrorCode = "BAD_CONSERVATION"

	// ErrCodeAliasCollision indicates an alias shadowing a catalogue entry.
	ErrCodeAliasCollision BuildErrorCode = "ALIAS_COLLISION"
)

// BuildError is a fatal catalogue construction failure. The process must
// refuse to run rather than serve verdicts from a corrupt database.
type BuildError struct {
	Code         BuildErrorCode
	Modification string
	Message      string
}

func (e *BuildError) Error() string {
	if e.Modification != "" {
		return fmt.Sprintf("%s: %s (modification=%s)", e.Code, e.Message, e.Modification)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
