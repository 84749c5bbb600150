// Package verdict folds scan results into the overall pass/fail decision.
package verdict

import "github.com/offlinegate/offlinegate/internal/types"

// Aggregate combines the source result with the optional binary result.
// A nil binary result means no binary was supplied: BinaryPassed stays absent
// and the overall outcome depends on the source scan alone.
func Aggregate(source types.ScanResult, binary *types.ScanResult) types.Verdict {
	v := types.Verdict{
		SourcePassed:  source.Passed,
		OverallPassed: source.Passed,
	}
	if binary != nil {
		ok := binary.Passed
		v.BinaryPassed = &ok
		v.OverallPassed = v.OverallPassed && ok
	}
	return v
}

// Strict downgrades a binary result that passed without being inspected.
// It returns the verdict unchanged unless the binary scan was unverified.
func Strict(v types.Verdict, binary *types.ScanResult) types.Verdict {
	if binary == nil || !binary.Stats.Unverified {
		return v
	}
	failed := false
	v.BinaryPassed = &failed
	v.OverallPassed = false
	return v
}

// ExitCode maps a verdict to the process exit status.
func ExitCode(v types.Verdict) int {
	if v.OverallPassed {
		return 0
	}
	return 1
}
