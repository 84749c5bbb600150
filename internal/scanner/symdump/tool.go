package symdump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/offlinegate/offlinegate/internal/scanner"
)

// Tool is an external symbol-dump program invoked as a read-only inspection
// of a binary: Command Args... <binary>.
type Tool struct {
	// Label is the display name; defaults to Command joined with Args.
	Label string
	// Command is an executable name resolved on $PATH, or an explicit path.
	Command string
	// Args precede the binary path on the command line.
	Args []string
}

// Name implements scanner.Extractor.
func (t Tool) Name() string {
	if t.Label != "" {
		return t.Label
	}
	return strings.TrimSpace(t.Command + " " + strings.Join(t.Args, " "))
}

// Find resolves the tool executable. An explicit path (anything containing a
// path separator) must exist; a bare name is looked up on $PATH.
func (t Tool) Find() (string, error) {
	if t.Command == "" {
		return "", &SpawnError{Tool: t.Name(), Err: errors.New("no command configured")}
	}
	if filepath.Base(t.Command) != t.Command {
		if _, err := os.Stat(t.Command); err != nil {
			return "", &SpawnError{Tool: t.Name(), Err: fmt.Errorf("custom path not found: %s", t.Command)}
		}
		return t.Command, nil
	}
	p, err := exec.LookPath(t.Command)
	if err != nil {
		return "", &SpawnError{Tool: t.Name(), Err: fmt.Errorf("%s not found in PATH", t.Command)}
	}
	return p, nil
}

// Extract implements scanner.Extractor. Stdout is the dump; stderr is kept
// only to explain a failure. The child is always waited on before returning.
func (t Tool) Extract(ctx context.Context, path string) ([]byte, error) {
	bin, err := t.Find()
	if err != nil {
		return nil, err
	}
	args := append(append([]string(nil), t.Args...), path)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, wrapToolError(t.Name(), err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Version runs the tool with --version and returns the first output line.
func (t Tool) Version(ctx context.Context) (string, error) {
	bin, err := t.Find()
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", t.Command, err)
	}
	v := strings.TrimSpace(string(out))
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v, nil
}

var _ scanner.Extractor = Tool{}
