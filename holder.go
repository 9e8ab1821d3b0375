package unflatten

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/jacoelho/unflatten/internal/keypath"
)

// slots is a container a path segment can address: the root mapping or a
// holder. Mappings are only addressed by fields and sequences only by
// indexes; the builder never mixes them.
type slots interface {
	get(segment keypath.Segment) (any, bool)
	set(segment keypath.Segment, value any)
}

// holder is an in-progress mapping or sequence. Its kind is fixed when it
// is created.
type holder interface {
	slots
	kind() Kind
	materialize(gaps GapPolicy) (any, error)
}

func newHolder(kind Kind, flatKey string) holder {
	if kind == KindSequence {
		return &sequenceHolder{flatKey: flatKey, entries: make(map[int]any)}
	}
	return &mappingHolder{flatKey: flatKey, mapSlots: mapSlots{entries: NewMap()}}
}

func kindOf(value any) Kind {
	if node, ok := value.(holder); ok {
		return node.kind()
	}
	return KindTerminal
}

type mapSlots struct {
	entries *Map
}

func (s mapSlots) get(segment keypath.Segment) (any, bool) {
	return s.entries.Get(string(segment.(keypath.Field)))
}

func (s mapSlots) set(segment keypath.Segment, value any) {
	s.entries.Set(string(segment.(keypath.Field)), value)
}

type mappingHolder struct {
	mapSlots
	flatKey string
}

func (h *mappingHolder) kind() Kind {
	return KindMapping
}

// materialize returns the backing mapping; children were already replaced
// because they were created, and are therefore finalized, after h.
func (h *mappingHolder) materialize(GapPolicy) (any, error) {
	return h.entries, nil
}

type sequenceHolder struct {
	flatKey string
	entries map[int]any
}

func (h *sequenceHolder) get(segment keypath.Segment) (any, bool) {
	value, ok := h.entries[int(segment.(keypath.Index))]
	return value, ok
}

func (h *sequenceHolder) set(segment keypath.Segment, value any) {
	h.entries[int(segment.(keypath.Index))] = value
}

func (h *sequenceHolder) kind() Kind {
	return KindSequence
}

// materialize turns the sparse index mapping into a dense sequence,
// filling every missing index below the highest one according to gaps.
func (h *sequenceHolder) materialize(gaps GapPolicy) (any, error) {
	indexes := slices.Sorted(maps.Keys(h.entries))

	out := make([]any, 0, len(indexes))
	next := 0
	for _, index := range indexes {
		if next < index && gaps == GapError {
			return nil, missingIndex(h.flatKey, next)
		}
		// index+1 would not fit the sequence length.
		if index == math.MaxInt {
			return nil, fmt.Errorf("%w: %s[%d] has no representable sequence length", ErrIndexLimit, h.flatKey, index)
		}

		for ; next < index; next++ {
			out = append(out, gaps.placeholder())
		}

		out = append(out, h.entries[index])
		next = index + 1
	}

	return out, nil
}
