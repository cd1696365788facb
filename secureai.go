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

// Package secureai is the rule evaluation and finding-lifecycle engine of
// the secureai scanner: it runs the rule set over a parsed syntax corpus,
// deduplicates and suppresses findings, and optionally diffs them against a
// persisted baseline.
package secureai

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/secureai/secureai/baseline"
	"github.com/secureai/secureai/finding"
	"github.com/secureai/secureai/internal/analysiscache"
)

// Metrics summarizes one scan.
type Metrics struct {
	NumFiles     int            `json:"files"`
	NumLines     int            `json:"lines"`
	NumFindings  int            `json:"findings"`
	NumIgnored   int            `json:"ignored"`
	RiskFindings int            `json:"risk_findings"`
	BySeverity   map[string]int `json:"by_severity"`
}

// Result is the engine's output, handed to report-building collaborators.
type Result struct {
	RunID        string            `json:"run_id"`
	Findings     []finding.Finding `json:"findings"`
	Ignored      []finding.Ignored `json:"ignored"`
	ScannedFiles []string          `json:"scanned_files"`
	Metrics      Metrics           `json:"metrics"`
	Baseline     *baseline.Summary `json:"baseline,omitempty"`
}

// Scanner evaluates the loaded rule set over a syntax corpus. Rules run
// sequentially over the immutable corpus; the engine holds no shared
// mutable state across rules.
type Scanner struct {
	config     Config
	log        hclog.Logger
	rules      []Rule
	runID      string
	directives *analysiscache.Cache[[]*IgnoreDirective]
}

// New builds a Scanner. A nil config gets defaults, a nil logger is
// discarded.
func New(config Config, log hclog.Logger) *Scanner {
	if config == nil {
		config = NewConfig()
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Scanner{
		config:     config,
		log:        log.Named("secureai"),
		runID:      uuid.NewString(),
		directives: analysiscache.New[[]*IgnoreDirective](),
	}
}

// Config returns the scanner configuration.
func (s *Scanner) Config() Config { return s.config }

// RunID identifies this scanner's scan runs.
func (s *Scanner) RunID() string { return s.runID }

// LoadRules registers detectors. Registration order does not affect output:
// dedupe and ignore matching operate on a globally sorted view.
func (s *Scanner) LoadRules(rules ...Rule) {
	s.rules = append(s.rules, rules...)
}

// Rules returns the registered detectors.
func (s *Scanner) Rules() []Rule { return s.rules }

// Scan runs every rule over every unit, then deduplicates and resolves
// ignore directives. The corpus is consumed read-only.
func (s *Scanner) Scan(units []*SourceUnit) *Result {
	var raw []finding.Finding
	resolver := newIgnoreResolver()
	metrics := Metrics{BySeverity: map[string]int{}}
	scanned := make([]string, 0, len(units))

	for _, unit := range units {
		if unit == nil {
			continue
		}
		scanned = append(scanned, unit.Path)
		metrics.NumFiles++
		metrics.NumLines += len(unit.Lines)

		for _, rule := range s.rules {
			found := rule.Evaluate(unit)
			if len(found) > 0 {
				s.log.Debug("rule matched", "rule", rule.ID(), "file", unit.Path, "count", len(found))
			}
			raw = append(raw, found...)
		}
		resolver.addDirectives(unit.Path, s.cachedDirectives(unit))
	}

	SortFindings(raw)
	deduped := Deduplicate(raw)
	active, ignored := resolver.resolve(deduped)

	metrics.NumFindings = len(active)
	metrics.NumIgnored = len(ignored)
	for _, f := range active {
		metrics.BySeverity[f.Severity.String()]++
		if !IsInventoryRule(f.RuleID) {
			metrics.RiskFindings++
		}
	}

	return &Result{
		RunID:        s.runID,
		Findings:     active,
		Ignored:      ignored,
		ScannedFiles: scanned,
		Metrics:      metrics,
	}
}

// ScanWithBaseline runs Scan and then classifies the active findings
// against the baseline file at path, narrowing Result.Findings to the
// new-or-regressed working set. A malformed or schema-mismatched baseline
// is a hard error.
func (s *Scanner) ScanWithBaseline(units []*SourceUnit, path string) (*Result, error) {
	res := s.Scan(units)
	working, summary, err := baseline.Diff(path, res.Findings)
	if err != nil {
		return nil, err
	}
	res.Findings = working
	res.Baseline = summary
	return res, nil
}

// cachedDirectives memoizes per-unit directive parsing so the resolver and
// reporters share one extraction.
func (s *Scanner) cachedDirectives(unit *SourceUnit) []*IgnoreDirective {
	return s.directives.Get(unit.Path, func() []*IgnoreDirective {
		return ParseIgnoreDirectives(unit)
	})
}
