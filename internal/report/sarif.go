package report

import (
	"encoding/json"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/offlinegate/offlinegate/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool               `json:"tool"`
	AutomationDetails *sarifAutomationDetails `json:"automationDetails,omitempty"`
	Invocations       []sarifInvocation       `json:"invocations"`
	Results           []sarifResult           `json:"results"`
}

type sarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// artifactURI turns an OS path into a relative URI reference with each
// segment percent-encoded.
func artifactURI(p string) string {
	segs := strings.Split(filepath.ToSlash(p), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

func ruleID(m types.Match) string {
	return string(m.Category) + "/" + m.Pattern
}

// WriteSARIF writes the run's matches as SARIF 2.1.0. Every match is an
// error-level result; warnings become tool execution notifications.
func WriteSARIF(w io.Writer, run Run) error {
	driver := sarifDriver{Name: "offlinegate", Version: run.Version, Rules: []sarifRule{}}
	index := map[string]int{}
	results := []sarifResult{}
	for _, m := range run.Matches() {
		id := ruleID(m)
		idx, ok := index[id]
		if !ok {
			idx = len(driver.Rules)
			index[id] = idx
			driver.Rules = append(driver.Rules, sarifRule{
				ID:               id,
				ShortDescription: sarifMessage{Text: "forbidden networking reference " + m.Pattern},
			})
		}
		loc := sarifLoc{PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: artifactURI(m.Path)}}}
		if m.Line > 0 {
			loc.PhysicalLocation.Region = &sarifRegion{StartLine: m.Line}
		}
		results = append(results, sarifResult{
			RuleID:    id,
			RuleIndex: idx,
			Level:     "error",
			Message:   sarifMessage{Text: m.Pattern + " detected"},
			Locations: []sarifLoc{loc},
		})
	}

	inv := sarifInvocation{ExecutionSuccessful: true}
	scans := []types.ScanResult{run.Source}
	if run.Binary != nil {
		scans = append(scans, *run.Binary)
	}
	for _, s := range scans {
		for _, d := range s.Warnings() {
			inv.Notifications = append(inv.Notifications, sarifNotification{
				Level:   "warning",
				Message: sarifMessage{Text: d.Message},
			})
		}
	}

	sr := sarifRun{
		Tool:        sarifTool{Driver: driver},
		Invocations: []sarifInvocation{inv},
		Results:     results,
	}
	if run.ID != "" {
		sr.AutomationDetails = &sarifAutomationDetails{GUID: run.ID}
	}
	doc := sarif{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{sr},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
