package offlinegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/offlinegate/offlinegate/internal/config"
	"github.com/offlinegate/offlinegate/internal/engine"
	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/report"
	"github.com/offlinegate/offlinegate/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// checkOptions is the flag state of one gate invocation.
type checkOptions struct {
	// Dir is the working directory for config lookup, relative roots and
	// repo metadata. Empty means the process working directory.
	Dir        string
	BinaryPath string
	Config     string

	Roots    []string
	Exts     []string
	Exclude  []string
	MaxBytes int64
	Strict   bool
	Nm       string
	Objdump  string

	JSON    bool
	SARIF   bool
	Table   bool
	NoColor bool
	Verbose bool
}

func flagOptions(args []string) checkOptions {
	o := checkOptions{
		Config:   flagConfig,
		Roots:    flagRoots,
		Exts:     flagExts,
		Exclude:  flagExclude,
		MaxBytes: flagMaxBytes,
		Strict:   flagStrict,
		Nm:       flagNm,
		Objdump:  flagObjdump,
		JSON:     flagJSON,
		SARIF:    flagSARIF,
		Table:    flagTable,
		NoColor:  flagNoColor,
		Verbose:  flagVerbose,
	}
	if len(args) > 0 {
		o.BinaryPath = args[0]
	}
	return o
}

func runCheck(cmd *cobra.Command, args []string) error {
	code, err := check(cmd.Context(), cmd.OutOrStdout(), flagOptions(args))
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// check runs the gate and renders the report to out. It returns the process
// exit code; a non-nil error means the gate could not run at all.
func check(ctx context.Context, out io.Writer, o checkOptions) (int, error) {
	fc, err := loadConfig(o.Dir, o.Config)
	if err != nil {
		return 2, err
	}
	opts := resolve(o, fc)

	run := core.Check(ctx, opts)
	if err := ctx.Err(); err != nil {
		return 2, fmt.Errorf("interrupted: %w", err)
	}

	popts := report.PrintOptions{
		NoColor: pickBool(o.NoColor, fc.NoColor) || !isTerminal(out),
		Verbose: o.Verbose,
	}
	switch {
	case o.SARIF:
		if err := report.WriteSARIF(out, run); err != nil {
			return 2, fmt.Errorf("sarif error: %w", err)
		}
	case o.JSON:
		if err := report.WriteJSON(out, run); err != nil {
			return 2, fmt.Errorf("json error: %w", err)
		}
	case o.Table:
		report.PrintTable(out, run, popts)
	default:
		report.PrintText(out, run, popts)
	}
	return run.ExitCode(), nil
}

// loadConfig reads the explicit config file, or the local one in dir if
// present. A missing local file is not an error.
func loadConfig(dir, explicit string) (config.FileConfig, error) {
	if explicit != "" {
		fc, err := config.LoadFile(inDir(dir, explicit))
		if err != nil {
			return fc, fmt.Errorf("config: %w", err)
		}
		return fc, nil
	}
	if dir == "" {
		dir = "."
	}
	fc, err := config.LoadLocal(dir)
	if err != nil && !errors.Is(err, config.ErrNoLocalConfig) {
		return fc, fmt.Errorf("config: %w", err)
	}
	return fc, nil
}

// resolve merges flags over the file config over built-in defaults.
func resolve(o checkOptions, fc config.FileConfig) core.Options {
	roots := pickStrings(o.Roots, fc.Roots, engine.DefaultRoots)
	abs := make([]string, len(roots))
	for i, r := range roots {
		abs[i] = inDir(o.Dir, r)
	}

	tools := fc.GetTools()
	if o.Nm != "" {
		tools.Nm = &o.Nm
	}
	if o.Objdump != "" {
		tools.Objdump = &o.Objdump
	}

	binary := o.BinaryPath
	if binary != "" {
		binary = inDir(o.Dir, binary)
	}

	repoDir := o.Dir
	if repoDir == "" {
		repoDir = "."
	}

	return core.Options{
		Source: engine.Config{
			Roots:        abs,
			Extensions:   pickStrings(o.Exts, fc.Extensions, engine.DefaultExtensions),
			ExcludeGlobs: pickStrings(o.Exclude, fc.Exclude, nil),
			MaxBytes:     pickInt64(o.MaxBytes, fc.MaxBytes),
		},
		BinaryPath: binary,
		Tools:      tools,
		Registry:   policy.Default().With(fc.ExtraBinaryPatterns, fc.ExtraSourcePatterns),
		Strict:     pickBool(o.Strict, fc.Strict),
		RepoDir:    repoDir,
		Version:    version,
	}
}

func inDir(dir, p string) string {
	if dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
