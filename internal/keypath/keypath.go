// Package keypath splits flat keys such as "foo[0].bar" into path segments
// and renders segments back into flat keys for diagnostics.
//
// Grammar:
//
//	flat_key    := segment ( '.' segment | index_group )*
//	segment     := any run of characters not containing '.' or '['
//	index_group := '[' digits ']' ( '[' digits ']' )*
//
// An index group only counts when it is followed by '.' or the end of the
// key. Anything else stays part of the field name, so "foo[0]bar" and
// "foo[x]" are plain fields. There is no escaping.
package keypath

import (
	"strconv"
	"strings"
)

// Segment is one decoded step of a flat key: a Field or an Index.
type Segment interface {
	segment()
}

// Field addresses a mapping entry.
type Field string

// Index addresses a sequence element.
type Index int

func (Field) segment() {}
func (Index) segment() {}

// Path is an ordered, non-empty list of segments decoded from one flat key.
type Path []Segment

// Parse decodes a flat key. The first segment is always a Field, possibly
// empty when the key starts with a bracket group.
func Parse(flatKey string) Path {
	path := make(Path, 0, strings.Count(flatKey, ".")+2)
	start := 0
	// false right after an index group: the token that follows is always
	// empty and is not a field.
	pending := true

	pos := 0
	for pos < len(flatKey) {
		switch flatKey[pos] {
		case '.':
			if pending {
				path = append(path, Field(flatKey[start:pos]))
			}
			pos++
			start = pos
			pending = true
		case '[':
			indexes, end, ok := scanIndexGroup(flatKey, pos)
			if !ok {
				pos++
				continue
			}
			if pending {
				path = append(path, Field(flatKey[start:pos]))
			}
			path = append(path, indexes...)
			pos = end
			start = end
			pending = false
		default:
			pos++
		}
	}

	if pending {
		path = append(path, Field(flatKey[start:]))
	}

	return path
}

// scanIndexGroup reads a maximal run of "[digits]" groups starting at pos.
// The run is accepted only when it ends the key or is followed by '.'.
func scanIndexGroup(input string, pos int) (Path, int, bool) {
	var indexes Path

	for pos < len(input) && input[pos] == '[' {
		digitsStart := pos + 1
		digitsEnd := digitsStart
		for digitsEnd < len(input) && isDigit(input[digitsEnd]) {
			digitsEnd++
		}
		if digitsEnd == digitsStart || digitsEnd >= len(input) || input[digitsEnd] != ']' {
			break
		}

		value, err := strconv.Atoi(input[digitsStart:digitsEnd])
		if err != nil {
			return nil, 0, false
		}
		indexes = append(indexes, Index(value))
		pos = digitsEnd + 1
	}

	if len(indexes) == 0 {
		return nil, 0, false
	}
	if pos < len(input) && input[pos] != '.' {
		return nil, 0, false
	}

	return indexes, pos, true
}

// Format renders segments as a flat key: fields as "name" (".name" after
// the first segment) and indexes as "[N]".
func Format(path Path) string {
	var b strings.Builder
	for i, segment := range path {
		switch s := segment.(type) {
		case Field:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(string(s))
		case Index:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(int(s)))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}
