package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/offlinegate/offlinegate/internal/config"
	"github.com/offlinegate/offlinegate/internal/engine"
	"github.com/offlinegate/offlinegate/internal/git"
	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/report"
	"github.com/offlinegate/offlinegate/internal/scanner/factory"
	"github.com/offlinegate/offlinegate/internal/types"
	"github.com/offlinegate/offlinegate/internal/verdict"
)

// Re-export selected internal types as a stable public API surface.
type (
	SourceConfig = engine.Config
	ToolsConfig  = config.ToolsConfig
	Registry     = policy.Registry
	Verdict      = types.Verdict
	ScanResult   = types.ScanResult
	Match        = types.Match
	Run          = report.Run
)

// Options configures one gate invocation.
type Options struct {
	Source SourceConfig
	// BinaryPath is optional; empty skips the binary scan entirely.
	BinaryPath string
	Tools      ToolsConfig
	// Registry defaults to DefaultPolicy() when nil.
	Registry *Registry
	// Strict treats a binary that could not be inspected as failing.
	Strict bool
	// RepoDir, when set, is used to record commit provenance in the run.
	RepoDir string
	Version string
	// RunID labels the run in JSON and SARIF output; a random UUID when empty.
	RunID string
}

// DefaultPolicy returns the built-in offline policy.
func DefaultPolicy() *Registry { return policy.Default() }

// Check runs the source scan unconditionally and the binary scan only when a
// binary path is supplied, then aggregates both into a verdict.
func Check(ctx context.Context, opts Options) Run {
	reg := opts.Registry
	if reg == nil {
		reg = policy.Default()
	}

	src := engine.Scan(ctx, opts.Source, reg)

	var bin *types.ScanResult
	if opts.BinaryPath != "" {
		res := factory.New(factory.Config{Tools: opts.Tools}, reg).Scan(ctx, opts.BinaryPath)
		bin = &res
	}

	v := verdict.Aggregate(src, bin)
	if opts.Strict {
		v = verdict.Strict(v, bin)
	}

	id := opts.RunID
	if id == "" {
		id = uuid.NewString()
	}
	run := Run{
		ID:         id,
		Verdict:    v,
		Source:     src,
		Binary:     bin,
		BinaryPath: opts.BinaryPath,
		Strict:     opts.Strict,
		Version:    opts.Version,
	}
	if opts.RepoDir != "" {
		run.Repo = git.RepoMetadata(opts.RepoDir)
	}
	return run
}
