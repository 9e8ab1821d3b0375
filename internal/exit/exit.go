package exit

import (
	"fmt"
	"io"
	"os"
)

// Result holds the output destination, exit code and message the command
// terminates with.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Redirect sends successful results to stdout and failures to stderr.
func (r *Result) Redirect(stdout, stderr io.Writer) *Result {
	if r.ExitCode == 0 {
		r.Output = stdout
	} else {
		r.Output = stderr
	}
	return r
}

func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
