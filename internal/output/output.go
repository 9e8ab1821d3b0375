// Package output renders unflattened documents.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-yaml"
)

// ErrUnsupportedFormat indicates an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format determines how documents are printed.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	// FormatDump prints Go values with their concrete types, which shows how
	// terminal values were decoded.
	FormatDump Format = "dump"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Write renders value to w. Mappings built by unflatten keep their order in
// YAML and JSON output.
func Write(w io.Writer, value any, format Format) error {
	switch format {
	case FormatYAML:
		payload, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(payload)
		return err
	case FormatJSON:
		payload, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", payload)
		return err
	case FormatDump:
		dumper.Fdump(w, value)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
