// Package core provides a small, stable facade over offlinegate's internal
// scanners for Go programs that want to run the offline gate in-process.
//
// Example:
//
//	run := core.Check(ctx, core.Options{
//		Source:     core.SourceConfig{Roots: []string{"App/Sources"}},
//		BinaryPath: "build/App",
//	})
//	if !run.Verdict.OverallPassed { /* fail the build */ }
//	_ = core.MarshalRun(os.Stdout, run)
package core
