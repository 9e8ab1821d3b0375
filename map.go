package unflatten

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/goccy/go-yaml"
)

// Map is a string-keyed mapping that remembers first-insertion order.
// The zero value is not usable; create one with NewMap.
type Map struct {
	keys   []string
	values map[string]any
}

func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key. A new key is appended to the order; an
// existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// All iterates entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// Items makes a Map usable as a Source.
func (m *Map) Items() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for key, value := range m.All() {
			if !yield(key, value) {
				return
			}
		}
	}
}

// Plain converts the mapping and every nested *Map into map[string]any,
// and every nested sequence into a fresh []any. Order is lost.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, len(m.keys))
	for key, value := range m.All() {
		out[key] = plain(value)
	}
	return out
}

func plain(value any) any {
	switch v := value.(type) {
	case *Map:
		return v.Plain()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return value
	}
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')

		encodedValue, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode value for key %q: %w", key, err)
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML emits an ordered mapping.
func (m *Map) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(m.keys))
	for key, value := range m.All() {
		out = append(out, yaml.MapItem{Key: key, Value: value})
	}
	return out, nil
}
