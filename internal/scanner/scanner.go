package scanner

import (
	"context"
	"fmt"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/types"
)

// Extractor produces a textual symbol dump for a binary.
// Implementations include external tools such as nm and objdump.
type Extractor interface {
	// Name identifies the extractor in diagnostics and reports.
	Name() string

	// Extract returns the dump for the binary at path. Any error means the
	// extractor could not produce an authoritative dump.
	Extract(ctx context.Context, path string) ([]byte, error)
}

// BinaryScanner matches binary-symbol patterns against a symbol dump obtained
// from the first extractor in the chain that succeeds.
type BinaryScanner struct {
	chain    Chain
	registry *policy.Registry
}

// NewBinaryScanner creates a scanner over the given chain and registry.
func NewBinaryScanner(chain Chain, reg *policy.Registry) *BinaryScanner {
	return &BinaryScanner{chain: chain, registry: reg}
}

// Scan inspects the binary at path. It never fails: a missing binary or an
// exhausted extractor chain yields a passing, unverified result carrying
// warning diagnostics.
func (s *BinaryScanner) Scan(ctx context.Context, path string) types.ScanResult {
	if _, err := os.Stat(path); err != nil {
		return types.NewScanResult(types.ScanBinary, nil, []types.Diagnostic{{
			Level:   types.LevelWarning,
			Kind:    types.DiagMissingArtifact,
			Path:    path,
			Message: fmt.Sprintf("binary not found at %s; skipping symbol check", path),
		}}, types.Stats{Unverified: true})
	}

	dump, tool, diags := s.chain.Extract(ctx, path)
	if tool == "" {
		diags = append(diags, types.Diagnostic{
			Level:   types.LevelWarning,
			Kind:    types.DiagToolFailure,
			Path:    path,
			Message: fmt.Sprintf("could not analyze binary %s", path),
		})
		return types.NewScanResult(types.ScanBinary, nil, diags, types.Stats{Unverified: true})
	}

	corpus := string(dump)
	var matches []types.Match
	for _, p := range s.registry.Find(types.CatBinarySymbol, corpus) {
		line, _ := policy.LineOf(corpus, p)
		matches = append(matches, types.Match{
			Pattern:  p,
			Category: types.CatBinarySymbol,
			Path:     path,
			Location: line,
		})
	}

	return types.NewScanResult(types.ScanBinary, matches, diags, types.Stats{
		Tool:   tool,
		Digest: Digest(dump),
	})
}

// Digest returns the hex xxhash64 of a corpus.
func Digest(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
