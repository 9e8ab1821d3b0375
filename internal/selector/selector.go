// Package selector applies JSONPath queries (RFC 9535) to unflattened
// documents.
package selector

import (
	"errors"
	"fmt"

	"github.com/jacoelho/unflatten"
	"github.com/theory/jsonpath"
)

var (
	// ErrInvalidInput indicates an empty document or expression.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPath indicates a JSONPath expression that does not parse.
	ErrInvalidPath = errors.New("invalid JSONPath")

	// ErrNotFound indicates the expression matched nothing.
	ErrNotFound = errors.New("not found")
)

// Select returns every node matched by expr. Mappings in the matched nodes
// are plain map[string]any values, so their key order is not preserved.
func Select(doc *unflatten.Map, expr string) ([]any, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrInvalidInput)
	}
	if expr == "" {
		return nil, fmt.Errorf("%w: JSONPath expression is empty", ErrInvalidInput)
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidPath, expr, err)
	}

	nodes := path.Select(doc.Plain())
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, expr)
	}

	out := make([]any, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node)
	}
	return out, nil
}

// IsNotFound reports whether err means the expression matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
