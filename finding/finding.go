// Package finding defines the canonical finding model shared by the rule
// engine, the ignore resolver, the baseline differ, and the reporters.
package finding

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the rule-fixed risk level of a finding.
type Severity int

// Severity levels ordered from least to most severe. The ordering is load
// bearing: the baseline differ compares ranks to detect regressions.
const (
	Low Severity = iota
	Medium
	High
	Critical
)

// String returns the lowercase wire form of the severity.
func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Critical:
		return "critical"
	}
	return "unknown"
}

// ParseSeverity converts a wire-form severity back to its rank. Unknown
// values map to Low so a damaged severity never inflates a regression check.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return Critical
	case "high":
		return High
	case "medium":
		return Medium
	}
	return Low
}

// MarshalJSON renders the severity as its lowercase string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the lowercase string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("severity: %w", err)
	}
	*s = ParseSeverity(raw)
	return nil
}

// Finding is one reported instance of a detected risky pattern. Immutable
// once created by a rule; later pipeline stages copy or drop, never edit,
// except for the optional AI suggestion annotation applied after the scan.
type Finding struct {
	RuleID         string   `json:"rule_id"`
	Title          string   `json:"title"`
	Severity       Severity `json:"severity"`
	File           string   `json:"file"`
	Line           int      `json:"line"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Confidence     float64  `json:"confidence"`
	Suggestion     string   `json:"suggestion,omitempty"`
}

// Ignored is a finding that was suppressed by an inline ignore directive,
// kept for reporting alongside its mandatory justification.
type Ignored struct {
	Finding        Finding `json:"finding"`
	Reason         string  `json:"reason"`
	AnnotationLine int     `json:"annotation_line"`
}
