package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/offlinegate/offlinegate/internal/types"
)

// ErrUnavailable marks extractor errors caused by a missing or unrunnable tool,
// as opposed to a tool that ran and reported failure.
var ErrUnavailable = errors.New("extractor unavailable")

// Chain is an ordered list of extractors tried until one succeeds.
type Chain []Extractor

// Extract runs each extractor in order and returns the first successful dump
// together with the name of the extractor that produced it. Later extractors
// are not run once one succeeds. Failures of earlier extractors are kept as
// info diagnostics. When every extractor fails, tool is empty and diags holds
// one warning per failure.
func (c Chain) Extract(ctx context.Context, path string) (dump []byte, tool string, diags []types.Diagnostic) {
	for _, ex := range c {
		if err := ctx.Err(); err != nil {
			diags = append(diags, types.Diagnostic{
				Level:   types.LevelWarning,
				Kind:    types.DiagCancelled,
				Path:    path,
				Message: fmt.Sprintf("symbol extraction cancelled: %v", err),
			})
			return nil, "", diags
		}
		out, err := ex.Extract(ctx, path)
		if err == nil {
			// earlier failures are superseded by this dump
			for i := range diags {
				diags[i].Level = types.LevelInfo
			}
			return out, ex.Name(), diags
		}
		kind := types.DiagToolFailure
		if errors.Is(err, ErrUnavailable) {
			kind = types.DiagToolUnavailable
		}
		diags = append(diags, types.Diagnostic{
			Level:   types.LevelWarning,
			Kind:    kind,
			Path:    path,
			Message: fmt.Sprintf("%s: %v", ex.Name(), err),
		})
	}
	return nil, "", diags
}

// Names lists the extractor names in chain order.
func (c Chain) Names() []string {
	out := make([]string, 0, len(c))
	for _, ex := range c {
		out = append(out, ex.Name())
	}
	return out
}
