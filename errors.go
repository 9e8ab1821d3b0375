package unflatten

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyType indicates a source key that is not a string.
	ErrInvalidKeyType = errors.New("keys must be strings")

	// ErrConflictingStructure indicates a path prefix required to be two
	// incompatible node kinds. The concrete error is a *ConflictError.
	ErrConflictingStructure = errors.New("conflicting structure")

	// ErrMissingIndex indicates a sequence gap under GapError.
	ErrMissingIndex = errors.New("missing sequence index")

	// ErrIndexLimit indicates an index above the WithMaxIndex limit.
	ErrIndexLimit = errors.New("sequence index above limit")
)

// Kind names the node kinds that can occupy a path prefix.
type Kind int

const (
	KindTerminal Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ConflictError reports a flat key whose nested structure disagrees with an
// earlier key.
type ConflictError struct {
	// Key is the offending flat-key prefix, or the full key when a terminal
	// value collides with nested structure.
	Key      string
	Existing Kind
	Required Kind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting types %s and %s for key %q", e.Existing, e.Required, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflictingStructure
}
