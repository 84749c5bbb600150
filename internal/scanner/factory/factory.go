package factory

import (
	"github.com/offlinegate/offlinegate/internal/config"
	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/scanner"
	"github.com/offlinegate/offlinegate/internal/scanner/symdump"
)

// Config is the subset of configuration needed to build the binary scanner.
type Config struct {
	Tools config.ToolsConfig
}

// DefaultTools returns the symbol-dump tools in fallback order: the
// dynamic-symbol reader first, then the full symbol-table reader.
func DefaultTools(cfg Config) []symdump.Tool {
	return []symdump.Tool{
		{Label: "nm -D", Command: cfg.Tools.GetNm(), Args: []string{"-D"}},
		{Label: "objdump -t", Command: cfg.Tools.GetObjdump(), Args: []string{"-t"}},
	}
}

// DefaultChain returns DefaultTools as an extractor chain.
func DefaultChain(cfg Config) scanner.Chain {
	tools := DefaultTools(cfg)
	chain := make(scanner.Chain, 0, len(tools))
	for _, t := range tools {
		chain = append(chain, t)
	}
	return chain
}

// New creates the binary scanner for the given registry.
func New(cfg Config, reg *policy.Registry) *scanner.BinaryScanner {
	return scanner.NewBinaryScanner(DefaultChain(cfg), reg)
}
