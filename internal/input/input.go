// Package input decodes flat key/value documents into ordered pairs.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/jacoelho/unflatten"
)

var (
	// ErrParser indicates a malformed flat document.
	ErrParser = errors.New("input parse error")

	// ErrUnsupportedFormat indicates an unknown input format.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Format names a flat document encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatQuery Format = "query"
)

// Read decodes every flat pair in r, keeping document order.
func Read(r io.Reader, format Format) (unflatten.Pairs, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return readDocument(r)
	case FormatQuery:
		return readQuery(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Document holds the pairs of one YAML or JSON document. JSON is read with
// the YAML decoder.
type Document struct {
	Pairs unflatten.Pairs
}

func readDocument(r io.Reader) (unflatten.Pairs, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return unflatten.Pairs{}, nil
		}
		if errors.Is(err, ErrParser) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to decode document: %v", ErrParser, err)
	}

	return doc.Pairs, nil
}

// UnmarshalYAML supports both mapping and sequence forms:
//
//	user.name: ada
//	user.roles[0]: admin
//
// or:
//
//	- key: user.name
//	  value: ada
//	- key: user.roles[0]
//	  value: admin
//
// Keys keep their decoded type so that non-string keys are reported by
// unflatten.Unflatten. Values may be any YAML value and are passed through.
func (d *Document) UnmarshalYAML(node ast.Node) error {
	switch n := node.(type) {
	case nil, *ast.NullNode:
		d.Pairs = unflatten.Pairs{}
		return nil
	case *ast.DocumentNode:
		return d.UnmarshalYAML(n.Body)
	case *ast.MappingValueNode:
		pair, err := decodePair(n)
		if err != nil {
			return err
		}
		d.Pairs = unflatten.Pairs{pair}
		return nil
	case *ast.MappingNode:
		out := make(unflatten.Pairs, 0, len(n.Values))
		for _, value := range n.Values {
			pair, err := decodePair(value)
			if err != nil {
				return err
			}
			out = append(out, pair)
		}
		d.Pairs = out
		return nil
	case *ast.SequenceNode:
		out := make(unflatten.Pairs, 0, len(n.Values))
		for index, item := range n.Values {
			pair, err := decodeEntry(index, item)
			if err != nil {
				return err
			}
			out = append(out, pair)
		}
		d.Pairs = out
		return nil
	default:
		return fmt.Errorf("%w: document must be mapping or sequence, got %s", ErrParser, node.Type())
	}
}

func decodePair(node *ast.MappingValueNode) (unflatten.Pair, error) {
	key, err := decodeNode(node.Key)
	if err != nil {
		return unflatten.Pair{}, fmt.Errorf("%w: invalid key: %v", ErrParser, err)
	}

	value, err := decodeNode(node.Value)
	if err != nil {
		return unflatten.Pair{}, fmt.Errorf("%w: invalid value for key %v: %v", ErrParser, key, err)
	}

	return unflatten.Pair{Key: key, Value: value}, nil
}

func decodeEntry(index int, item ast.Node) (unflatten.Pair, error) {
	var fields []*ast.MappingValueNode
	switch n := item.(type) {
	case *ast.MappingNode:
		fields = n.Values
	case *ast.MappingValueNode:
		fields = []*ast.MappingValueNode{n}
	default:
		return unflatten.Pair{}, fmt.Errorf("%w: entry at index %d must be mapping", ErrParser, index)
	}

	var (
		pair     unflatten.Pair
		hasKey   bool
		hasValue bool
	)

	for _, field := range fields {
		name, ok := field.Key.(*ast.StringNode)
		if !ok {
			return unflatten.Pair{}, fmt.Errorf("%w: entry at index %d has non-string field name", ErrParser, index)
		}

		decoded, err := decodeNode(field.Value)
		if err != nil {
			return unflatten.Pair{}, fmt.Errorf("%w: entry at index %d field %q: %v", ErrParser, index, name.Value, err)
		}

		switch name.Value {
		case "key":
			pair.Key = decoded
			hasKey = true
		case "value":
			pair.Value = decoded
			hasValue = true
		default:
			return unflatten.Pair{}, fmt.Errorf("%w: entry at index %d has unknown field %q", ErrParser, index, name.Value)
		}
	}

	if !hasKey {
		return unflatten.Pair{}, fmt.Errorf("%w: entry at index %d missing key", ErrParser, index)
	}
	if !hasValue {
		return unflatten.Pair{}, fmt.Errorf("%w: entry at index %d missing value", ErrParser, index)
	}

	return pair, nil
}

// decodeNode converts a node to a Go value. Nested mappings become
// *unflatten.Map so their order survives and they render like the
// unflattened structure around them.
func decodeNode(node ast.Node) (any, error) {
	var value any
	if err := yaml.NodeToValue(node, &value, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return orderedValue(value), nil
}

// orderedValue replaces every yaml.MapSlice in value, including those inside
// sequences. Non-string mapping keys are rendered with fmt.Sprint.
func orderedValue(value any) any {
	switch v := value.(type) {
	case yaml.MapSlice:
		out := unflatten.NewMap()
		for _, item := range v {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			out.Set(key, orderedValue(item.Value))
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = orderedValue(item)
		}
		return v
	default:
		return value
	}
}

// readQuery reads "a.b=1&c[0]=2" style input, as sent in query strings and
// form bodies. Pairs stay in order; keys and values are percent-decoded.
func readQuery(r io.Reader) (unflatten.Pairs, error) {
	var raw strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if raw.Len() > 0 {
			raw.WriteByte('&')
		}
		raw.WriteString(strings.TrimPrefix(line, "?"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read query: %v", ErrParser, err)
	}

	return ParseQuery(raw.String())
}

// ParseQuery splits an encoded query into ordered pairs. A field without
// '=' gets the empty string as value.
func ParseQuery(query string) (unflatten.Pairs, error) {
	out := unflatten.Pairs{}
	for field := range strings.SplitSeq(query, "&") {
		if field == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(field, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid key %q: %v", ErrParser, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid value for key %q: %v", ErrParser, key, err)
		}

		out = append(out, unflatten.Pair{Key: key, Value: value})
	}

	return out, nil
}
