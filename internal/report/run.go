package report

import (
	"github.com/offlinegate/offlinegate/internal/git"
	"github.com/offlinegate/offlinegate/internal/types"
	"github.com/offlinegate/offlinegate/internal/verdict"
)

// Run bundles everything a renderer needs about one gate invocation.
type Run struct {
	// ID correlates the JSON and SARIF documents of one invocation.
	ID         string
	Verdict    types.Verdict
	Source     types.ScanResult
	Binary     *types.ScanResult // nil when no binary was supplied
	BinaryPath string
	Strict     bool
	Repo       git.Metadata
	Version    string
}

// ExitCode is the process exit status for the run.
func (r Run) ExitCode() int { return verdict.ExitCode(r.Verdict) }

// Matches returns source matches followed by binary matches.
func (r Run) Matches() []types.Match {
	out := append([]types.Match(nil), r.Source.Matches...)
	if r.Binary != nil {
		out = append(out, r.Binary.Matches...)
	}
	return out
}
