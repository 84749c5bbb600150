package report

import (
	"encoding/json"
	"io"

	"github.com/offlinegate/offlinegate/internal/git"
	"github.com/offlinegate/offlinegate/internal/types"
)

type jsonDoc struct {
	Tool       string            `json:"tool"`
	Version    string            `json:"version,omitempty"`
	RunID      string            `json:"run_id,omitempty"`
	Verdict    types.Verdict     `json:"verdict"`
	ExitCode   int               `json:"exit_code"`
	Strict     bool              `json:"strict,omitempty"`
	Source     types.ScanResult  `json:"source"`
	Binary     *types.ScanResult `json:"binary,omitempty"`
	BinaryPath string            `json:"binary_path,omitempty"`
	Repo       *git.Metadata     `json:"repo,omitempty"`
}

// WriteJSON writes the run as an indented JSON document.
func WriteJSON(w io.Writer, run Run) error {
	doc := jsonDoc{
		Tool:       "offlinegate",
		Version:    run.Version,
		RunID:      run.ID,
		Verdict:    run.Verdict,
		ExitCode:   run.ExitCode(),
		Strict:     run.Strict,
		Source:     run.Source,
		Binary:     run.Binary,
		BinaryPath: run.BinaryPath,
	}
	if run.Repo != (git.Metadata{}) {
		repo := run.Repo
		doc.Repo = &repo
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
