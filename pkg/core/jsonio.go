package core

import (
	"encoding/json"
	"io"

	"github.com/offlinegate/offlinegate/internal/report"
)

// MarshalRun writes the run as the same JSON document the CLI emits with --json.
func MarshalRun(w io.Writer, run Run) error {
	return report.WriteJSON(w, run)
}

// UnmarshalVerdict decodes the verdict from a --json document, useful for
// pipelines that only need pass/fail.
func UnmarshalVerdict(r io.Reader) (Verdict, error) {
	var doc struct {
		Verdict Verdict `json:"verdict"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Verdict{}, err
	}
	return doc.Verdict, nil
}
