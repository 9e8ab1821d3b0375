package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/unflatten"
	"github.com/jacoelho/unflatten/internal/input"
	"github.com/jacoelho/unflatten/internal/output"
)

// StdinPath selects standard input as the input file.
const StdinPath = "-"

var (
	ErrNoArguments         = errors.New("no arguments provided")
	ErrHelp                = errors.New("help requested")
	ErrUnexpectedArguments = errors.New("unexpected positional arguments")
	ErrInvalidInputFormat  = errors.New("--from must be one of: yaml, json, query")
	ErrInvalidOutputFormat = errors.New("--to must be one of: yaml, json, dump")
	ErrInvalidGapPolicy    = errors.New("--gaps must be one of: empty, null, error")
	ErrInvalidMaxIndex     = errors.New("--max-index must not be negative")
)

// Config defines CLI options for the unflatten command.
type Config struct {
	InputFile    string
	InputFormat  input.Format
	OutputFormat output.Format
	Select       string
	Gaps         unflatten.GapPolicy
	MaxIndex     int
}

// Options converts the CLI settings into library options.
func (c *Config) Options() []unflatten.Option {
	return []unflatten.Option{
		unflatten.WithGapPolicy(c.Gaps),
		unflatten.WithMaxIndex(c.MaxIndex),
	}
}

// Parse parses and validates CLI arguments.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	inputFile := fs.String("input", StdinPath, "Path to the flat document, - for stdin")
	from := fs.String("from", string(input.FormatYAML), "Input format: yaml, json or query")
	to := fs.String("to", string(output.FormatYAML), "Output format: yaml, json or dump")
	selectExpr := fs.String("select", "", "JSONPath expression applied to the result")
	gaps := fs.String("gaps", unflatten.GapEmptyMapping.String(), "Sequence gap policy: empty, null or error")
	maxIndex := fs.Int("max-index", 0, "Reject sequence indexes above this value (0 = unlimited)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArguments, strings.Join(fs.Args(), " "))
	}

	if *inputFile != StdinPath {
		if _, err := os.Stat(*inputFile); err != nil {
			return nil, fmt.Errorf("input file not accessible: %w", err)
		}
	}

	inputFormat, err := parseInputFormat(*from)
	if err != nil {
		return nil, err
	}

	outputFormat, err := parseOutputFormat(*to)
	if err != nil {
		return nil, err
	}

	gapPolicy, err := parseGapPolicy(*gaps)
	if err != nil {
		return nil, err
	}

	if *maxIndex < 0 {
		return nil, fmt.Errorf("%w, got: %d", ErrInvalidMaxIndex, *maxIndex)
	}

	return &Config{
		InputFile:    *inputFile,
		InputFormat:  inputFormat,
		OutputFormat: outputFormat,
		Select:       strings.TrimSpace(*selectExpr),
		Gaps:         gapPolicy,
		MaxIndex:     *maxIndex,
	}, nil
}

func parseInputFormat(value string) (input.Format, error) {
	switch format := input.Format(normalize(value)); format {
	case "":
		return input.FormatYAML, nil
	case input.FormatYAML, input.FormatJSON, input.FormatQuery:
		return format, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrInvalidInputFormat, value)
	}
}

func parseOutputFormat(value string) (output.Format, error) {
	switch format := output.Format(normalize(value)); format {
	case "":
		return output.FormatYAML, nil
	case output.FormatYAML, output.FormatJSON, output.FormatDump:
		return format, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrInvalidOutputFormat, value)
	}
}

func parseGapPolicy(value string) (unflatten.GapPolicy, error) {
	switch normalize(value) {
	case "", unflatten.GapEmptyMapping.String():
		return unflatten.GapEmptyMapping, nil
	case unflatten.GapNil.String():
		return unflatten.GapNil, nil
	case unflatten.GapError.String():
		return unflatten.GapError, nil
	default:
		return 0, fmt.Errorf("%w, got: %s", ErrInvalidGapPolicy, value)
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Usage returns command usage text.
func Usage() string {
	return `unflatten - rebuild nested documents from flat key paths

Usage:
  unflatten [--input FILE] [--from yaml|json|query] [--to yaml|json|dump]
            [--select JSONPATH] [--gaps empty|null|error] [--max-index N]

Keys use '.' for mapping access and [N] for sequence indexes, e.g. "user.roles[0]".

Options:
  --input FILE        Flat document to read, - for stdin (default: -)
  --from FORMAT       Input format: yaml, json or query (default: yaml)
  --to FORMAT         Output format: yaml, json or dump (default: yaml)
  --select JSONPATH   Print only the nodes matched by a JSONPath expression
  --gaps POLICY       Fill skipped sequence indexes with empty mappings, null, or fail (default: empty)
  --max-index N       Reject sequence indexes above N, 0 disables the check (default: 0)
  -h, --help          Show this help message`
}
