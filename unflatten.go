package unflatten

import (
	"fmt"

	"github.com/jacoelho/unflatten/internal/keypath"
	"github.com/jacoelho/unflatten/internal/stack"
)

// Unflatten builds the nested document described by the flat keys in src.
//
// Pairs are applied in source order. A repeated key overwrites the earlier
// terminal value. Any error aborts the whole call and no partial document is
// returned.
func Unflatten(src Source, opts ...Option) (*Map, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &builder{
		root:    NewMap(),
		pending: stack.New[pending](),
		opts:    cfg,
	}

	position := 0
	for key, value := range src.Items() {
		flatKey, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: pair %d has key of type %T", ErrInvalidKeyType, position, key)
		}
		if err := b.add(flatKey, value); err != nil {
			return nil, err
		}
		position++
	}

	if err := b.finalize(); err != nil {
		return nil, err
	}

	return b.root, nil
}

// pending records where a holder was stored so it can be replaced by its
// materialized value.
type pending struct {
	parent slots
	key    keypath.Segment
	node   holder
}

type builder struct {
	root    *Map
	pending *stack.Stack[pending]
	opts    options
}

func (b *builder) add(flatKey string, value any) error {
	path := keypath.Parse(flatKey)
	if err := b.checkIndexes(path); err != nil {
		return err
	}

	var cursor slots = mapSlots{entries: b.root}
	for depth, segment := range path[:len(path)-1] {
		required := KindMapping
		if _, ok := path[depth+1].(keypath.Index); ok {
			required = KindSequence
		}

		existing, ok := cursor.get(segment)
		if !ok {
			node := newHolder(required, keypath.Format(path[:depth+1]))
			cursor.set(segment, node)
			b.pending.Push(pending{parent: cursor, key: segment, node: node})
			cursor = node
			continue
		}

		node, isHolder := existing.(holder)
		if !isHolder || node.kind() != required {
			return &ConflictError{
				Key:      keypath.Format(path[:depth+1]),
				Existing: kindOf(existing),
				Required: required,
			}
		}
		cursor = node
	}

	last := path[len(path)-1]
	if existing, ok := cursor.get(last); ok {
		if node, isHolder := existing.(holder); isHolder {
			return &ConflictError{Key: flatKey, Existing: node.kind(), Required: KindTerminal}
		}
	}
	cursor.set(last, value)

	return nil
}

func (b *builder) checkIndexes(path keypath.Path) error {
	if b.opts.maxIndex <= 0 {
		return nil
	}

	for depth, segment := range path {
		if index, ok := segment.(keypath.Index); ok && int(index) > b.opts.maxIndex {
			return fmt.Errorf("%w: %s exceeds %d", ErrIndexLimit, keypath.Format(path[:depth+1]), b.opts.maxIndex)
		}
	}

	return nil
}

// finalize replaces holders in reverse creation order, so every child is
// concrete before its parent is materialized.
func (b *builder) finalize() error {
	for record := range b.pending.Drain() {
		value, err := record.node.materialize(b.opts.gaps)
		if err != nil {
			return err
		}
		record.parent.set(record.key, value)
	}

	return nil
}
