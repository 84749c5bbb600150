package types

// Category partitions forbidden patterns by the corpus they are matched against.
type Category string

const (
	CatBinarySymbol Category = "binary_symbol"
	CatSourceText   Category = "source_text"
)

// Pattern is a forbidden literal substring belonging to exactly one category.
type Pattern struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Match records one forbidden pattern found in a corpus. Path is the source
// file or binary the corpus came from. Line and Location point at the first
// occurrence and are informational only.
type Match struct {
	Pattern  string   `json:"pattern"`
	Category Category `json:"category"`
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"`     // 1-based, source matches only
	Location string   `json:"location,omitempty"` // trimmed text of the matching line
}

// Level is the severity of a diagnostic. Diagnostics never affect the verdict.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// DiagnosticKind classifies recoverable conditions met during a scan.
type DiagnosticKind string

const (
	DiagMissingArtifact DiagnosticKind = "missing_artifact"
	DiagToolUnavailable DiagnosticKind = "tool_unavailable"
	DiagToolFailure     DiagnosticKind = "tool_failure"
	DiagFileReadError   DiagnosticKind = "file_read_error"
	DiagRootMissing     DiagnosticKind = "root_missing"
	DiagCancelled       DiagnosticKind = "cancelled"
)

// Diagnostic is a non-fatal message produced while scanning.
type Diagnostic struct {
	Level   Level          `json:"level"`
	Kind    DiagnosticKind `json:"kind"`
	Path    string         `json:"path,omitempty"`
	Message string         `json:"message"`
}

// ScanKind names which stage produced a ScanResult.
type ScanKind string

const (
	ScanSource ScanKind = "source"
	ScanBinary ScanKind = "binary"
)

// Stats holds counters and provenance for a single scan.
type Stats struct {
	FilesScanned int    `json:"files_scanned,omitempty"`
	FilesSkipped int    `json:"files_skipped,omitempty"`
	Tool         string `json:"tool,omitempty"`   // extractor that produced the binary dump
	Digest       string `json:"digest,omitempty"` // xxhash64 of the binary dump
	// Unverified is set when the binary could not be inspected and the scan
	// passed only because missing artifacts and tools fail open.
	Unverified bool `json:"unverified,omitempty"`
}

// ScanResult is the outcome of one scan. Passed is true iff Matches is empty;
// build values with NewScanResult to keep that invariant.
type ScanResult struct {
	Kind        ScanKind     `json:"kind"`
	Passed      bool         `json:"passed"`
	Matches     []Match      `json:"matches"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Stats       Stats        `json:"stats"`
}

// NewScanResult builds a ScanResult, deriving Passed from matches.
func NewScanResult(kind ScanKind, matches []Match, diags []Diagnostic, stats Stats) ScanResult {
	if matches == nil {
		matches = []Match{}
	}
	return ScanResult{
		Kind:        kind,
		Passed:      len(matches) == 0,
		Matches:     matches,
		Diagnostics: diags,
		Stats:       stats,
	}
}

// Warnings returns the warning-level diagnostics.
func (r ScanResult) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Level == LevelWarning {
			out = append(out, d)
		}
	}
	return out
}

// Verdict combines the source and optional binary scan outcomes.
// BinaryPassed is nil when no binary was supplied.
type Verdict struct {
	SourcePassed  bool  `json:"source_passed"`
	BinaryPassed  *bool `json:"binary_passed,omitempty"`
	OverallPassed bool  `json:"overall_passed"`
}
