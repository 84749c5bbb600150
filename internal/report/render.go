package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/offlinegate/offlinegate/internal/types"
	"github.com/olekukonko/tablewriter"
)

type PrintOptions struct {
	NoColor bool
	// Verbose also prints info-level diagnostics.
	Verbose bool
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func paint(s lipgloss.Style, text string, opts PrintOptions) string {
	if opts.NoColor {
		return text
	}
	return s.Render(text)
}

func status(passed bool, opts PrintOptions) string {
	if passed {
		return paint(passStyle, "PASS", opts)
	}
	return paint(failStyle, "FAIL", opts)
}

// PrintText writes the grouped human-readable report.
func PrintText(w io.Writer, run Run, opts PrintOptions) {
	fmt.Fprintf(w, "Source scan: %s\n", status(run.Source.Passed, opts))
	if len(run.Source.Matches) == 0 {
		fmt.Fprintln(w, "  No forbidden networking imports detected in source code")
	} else {
		fmt.Fprintf(w, "  Forbidden networking code detected (%d):\n", len(run.Source.Matches))
		for _, m := range run.Source.Matches {
			fmt.Fprintf(w, "    - %s: %s\n", sourceLocation(m), m.Pattern)
		}
	}
	printDiagnostics(w, run.Source, opts)
	fmt.Fprintln(w, paint(dimStyle, fmt.Sprintf("  files scanned: %d, skipped: %d", run.Source.Stats.FilesScanned, run.Source.Stats.FilesSkipped), opts))

	fmt.Fprintln(w)
	if run.Binary == nil {
		fmt.Fprintln(w, "Binary scan: skipped (no binary path provided)")
	} else {
		b := run.Binary
		fmt.Fprintf(w, "Binary scan: %s %s\n", status(b.Passed, opts), run.BinaryPath)
		switch {
		case len(b.Matches) > 0:
			fmt.Fprintf(w, "  Forbidden networking symbols detected (%d):\n", len(b.Matches))
			for _, m := range b.Matches {
				fmt.Fprintf(w, "    - %s\n", m.Pattern)
			}
		case b.Stats.Unverified:
			fmt.Fprintln(w, "  Binary was not inspected; treated as compliant")
		default:
			fmt.Fprintln(w, "  No forbidden networking symbols detected")
		}
		printDiagnostics(w, *b, opts)
		if b.Stats.Tool != "" {
			fmt.Fprintln(w, paint(dimStyle, fmt.Sprintf("  dump: %s, digest %s", b.Stats.Tool, b.Stats.Digest), opts))
		}
	}

	fmt.Fprintln(w)
	if run.Repo.Commit != "" {
		fmt.Fprintln(w, paint(dimStyle, "Commit: "+commitLine(run), opts))
	}
	if run.Verdict.OverallPassed {
		fmt.Fprintf(w, "Result: %s all networking checks passed\n", status(true, opts))
		return
	}
	fmt.Fprintf(w, "Result: %s networking code detected; the application must stay fully offline\n", status(false, opts))
	if run.Strict && run.Binary != nil && run.Binary.Stats.Unverified {
		fmt.Fprintln(w, "  (strict mode: an unverified binary counts as a failure)")
	}
}

// PrintTable writes all matches as a single table followed by the summary.
func PrintTable(w io.Writer, run Run, opts PrintOptions) {
	matches := run.Matches()
	if len(matches) == 0 {
		fmt.Fprintln(w, "No forbidden networking references found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SCAN", "PATTERN", "LOCATION")
		for _, m := range matches {
			scan, loc := "source", sourceLocation(m)
			if m.Category == types.CatBinarySymbol {
				scan, loc = "binary", m.Location
			}
			_ = table.Append([]string{scan, m.Pattern, loc})
		}
		_ = table.Render()
	}
	printDiagnostics(w, run.Source, opts)
	if run.Binary != nil {
		printDiagnostics(w, *run.Binary, opts)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source: %s  Binary: %s  Overall: %s\n",
		status(run.Verdict.SourcePassed, opts),
		binaryStatus(run.Verdict, opts),
		status(run.Verdict.OverallPassed, opts))
}

func binaryStatus(v types.Verdict, opts PrintOptions) string {
	if v.BinaryPassed == nil {
		return "n/a"
	}
	return status(*v.BinaryPassed, opts)
}

func printDiagnostics(w io.Writer, res types.ScanResult, opts PrintOptions) {
	for _, d := range res.Diagnostics {
		if d.Level == types.LevelInfo && !opts.Verbose {
			continue
		}
		label := string(d.Level) + ":"
		if d.Level != types.LevelInfo {
			label = paint(warnStyle, label, opts)
		}
		fmt.Fprintf(w, "  %s %s\n", label, d.Message)
	}
}

func sourceLocation(m types.Match) string {
	if m.Line > 0 {
		return fmt.Sprintf("%s:%d", m.Path, m.Line)
	}
	return m.Path
}

func commitLine(run Run) string {
	parts := []string{run.Repo.Commit}
	if run.Repo.Branch != "" {
		parts = append(parts, "("+run.Repo.Branch+")")
	}
	if run.Repo.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, " ")
}
