// (c) Copyright secureai's authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secureai

import (
	"strings"

	"github.com/secureai/secureai/finding"
)

// Rule is a stateless detector evaluated against each source unit. A rule
// that finds no qualifying nodes returns an empty list; rules never return
// errors, they skip malformed nodes.
type Rule interface {
	ID() string
	Title() string
	Severity() finding.Severity
	Evaluate(unit *SourceUnit) []finding.Finding
}

// MetaData carries a rule's fixed identity, embedded by rule
// implementations.
type MetaData struct {
	RuleID    string
	RuleTitle string
	Sev       finding.Severity
}

// ID returns the rule identifier.
func (m MetaData) ID() string { return m.RuleID }

// Title returns the human-readable rule title.
func (m MetaData) Title() string { return m.RuleTitle }

// Severity returns the rule-fixed severity.
func (m MetaData) Severity() finding.Severity { return m.Sev }

// NewFinding builds a finding stamped with the rule's identity.
func (m MetaData) NewFinding(unit *SourceUnit, line int, summary, description, recommendation string, sig finding.Signals) finding.Finding {
	return finding.Finding{
		RuleID:         m.RuleID,
		Title:          m.RuleTitle,
		Severity:       m.Sev,
		File:           unit.Path,
		Line:           line,
		Summary:        summary,
		Description:    description,
		Recommendation: recommendation,
		Confidence:     finding.Score(sig),
	}
}

// InventoryRulePrefix marks informational SDK-inventory rules. Findings from
// rules with this ID prefix are excluded from the primary risk count.
const InventoryRulePrefix = "LLM"

// IsInventoryRule reports whether a rule ID names an informational
// inventory rule rather than a vulnerability detector.
func IsInventoryRule(ruleID string) bool {
	return strings.HasPrefix(strings.ToUpper(ruleID), InventoryRulePrefix)
}
