// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

// Severity classifies a finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is a single result of a check.
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the ordered list of findings of one validation run.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Count returns the number of findings with the given severity.
func (r Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// LastRun is the summary of the most recent generate or validate run.
// Matches .robotsgen/run/last-run.json.
type LastRun struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`   // "robots", "humans" or "security"
	Status   string    `json:"status"` // "pass" or "fail"
	File     string    `json:"file"`
	Size     int       `json:"size"`
	Written  bool      `json:"written"`
	Findings []Finding `json:"findings"`
}
