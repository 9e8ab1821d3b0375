package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/unflatten"
	"github.com/jacoelho/unflatten/internal/config"
	"github.com/jacoelho/unflatten/internal/exit"
	"github.com/jacoelho/unflatten/internal/input"
	"github.com/jacoelho/unflatten/internal/output"
	"github.com/jacoelho/unflatten/internal/selector"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	result := execute(args, stdin)
	result.Redirect(stdout, stderr).Print()
	return result.ExitCode
}

func execute(args []string, stdin io.Reader) *exit.Result {
	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			return exit.Success(config.Usage() + "\n")
		}
		return exit.Errorf("Error: %v\n\n%s\n", err, config.Usage())
	}

	pairs, err := readPairs(cfg, stdin)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	doc, err := unflatten.Unflatten(pairs, cfg.Options()...)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	var value any = doc
	if cfg.Select != "" {
		nodes, err := selector.Select(doc, cfg.Select)
		if selector.IsNotFound(err) {
			return exit.Errorf("Error: no nodes match %s\n", cfg.Select)
		}
		if err != nil {
			return exit.Errorf("Error: %v\n", err)
		}
		value = nodes
		if len(nodes) == 1 {
			value = nodes[0]
		}
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, value, cfg.OutputFormat); err != nil {
		return exit.Errorf("Error: failed to write output: %v\n", err)
	}

	return exit.Success(buf.String())
}

func readPairs(cfg *config.Config, stdin io.Reader) (unflatten.Pairs, error) {
	if cfg.InputFile == config.StdinPath {
		return input.Read(stdin, cfg.InputFormat)
	}

	file, err := os.Open(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	return input.Read(file, cfg.InputFormat)
}
