package symdump

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/offlinegate/offlinegate/internal/scanner"
)

// ExitError reports a tool that ran but terminated with a non-zero status.
type ExitError struct {
	Tool   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
	if line := firstLine(e.Stderr); line != "" {
		msg += ": " + line
	}
	return msg
}

// SpawnError reports a tool that could not be started at all.
type SpawnError struct {
	Tool string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("%s could not be run: %v", e.Tool, e.Err) }

func (e *SpawnError) Unwrap() error { return e.Err }

// Is lets callers test spawn failures against scanner.ErrUnavailable.
func (e *SpawnError) Is(target error) bool { return target == scanner.ErrUnavailable }

func wrapToolError(tool string, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code >= 0 {
			return &ExitError{Tool: tool, Code: code, Stderr: stderr}
		}
		// killed by a signal, e.g. context cancellation
		return &ExitError{Tool: tool, Code: code, Stderr: strings.TrimSpace(stderr + "\n" + exitErr.String())}
	}
	if contains(err.Error(), "permission denied") {
		return &SpawnError{Tool: tool, Err: fmt.Errorf("%w (check execute permissions)", err)}
	}
	return &SpawnError{Tool: tool, Err: err}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
