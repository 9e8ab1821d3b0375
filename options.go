package unflatten

import (
	"fmt"
)

// GapPolicy decides what fills sequence indexes that no key assigned.
type GapPolicy int

const (
	// GapEmptyMapping fills gaps with an empty *Map.
	GapEmptyMapping GapPolicy = iota
	// GapNil fills gaps with nil.
	GapNil
	// GapError rejects gaps with ErrMissingIndex.
	GapError
)

func (p GapPolicy) String() string {
	switch p {
	case GapEmptyMapping:
		return "empty"
	case GapNil:
		return "null"
	case GapError:
		return "error"
	default:
		return fmt.Sprintf("GapPolicy(%d)", int(p))
	}
}

func (p GapPolicy) placeholder() any {
	if p == GapNil {
		return nil
	}
	return NewMap()
}

func missingIndex(flatKey string, index int) error {
	return fmt.Errorf("%w: %s[%d]", ErrMissingIndex, flatKey, index)
}

type options struct {
	gaps     GapPolicy
	maxIndex int
}

// Option configures Unflatten.
type Option func(*options)

// WithGapPolicy selects how sequence gaps are filled. Defaults to
// GapEmptyMapping.
func WithGapPolicy(policy GapPolicy) Option {
	return func(o *options) {
		o.gaps = policy
	}
}

// WithMaxIndex rejects keys with a sequence index above limit. A limit of 0
// or less disables the check.
func WithMaxIndex(limit int) Option {
	return func(o *options) {
		o.maxIndex = limit
	}
}
