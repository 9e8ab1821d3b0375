package unflatten

import (
	"iter"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
)

// Source yields flat key/value pairs in the order they should be applied.
// Keys are typed any so that non-string keys can be reported.
type Source interface {
	Items() iter.Seq2[any, any]
}

// Pair is one flat key and its terminal value.
type Pair struct {
	Key   any
	Value any
}

// Pairs is an ordered sequence of pairs.
type Pairs []Pair

func (p Pairs) Items() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, pair := range p {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// MapSlice adapts an ordered YAML/JSON mapping decoded with
// yaml.UseOrderedMap. Keys keep their decoded types, so a YAML key such as
// 1 or true is rejected by Unflatten.
type MapSlice yaml.MapSlice

func (s MapSlice) Items() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, item := range s {
			if !yield(item.Key, item.Value) {
				return
			}
		}
	}
}

// Sorted adapts a Go map, visiting keys in ascending order.
func Sorted(m map[string]any) Source {
	keys := slices.Sorted(maps.Keys(m))

	pairs := make(Pairs, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, Pair{Key: key, Value: m[key]})
	}
	return pairs
}
