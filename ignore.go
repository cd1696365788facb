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
	"regexp"
	"strings"

	"github.com/secureai/secureai/finding"
)

// Ignore directives suppress the next matching finding below them:
//
//	// secureai-ignore AI001: prompt is sanitized upstream
//
// The rule ID is case-insensitive and the reason is mandatory; a directive
// with an empty reason is discarded during parsing.
var ignorePattern = regexp.MustCompile(`(?i)//\s*secureai-ignore\s+([A-Za-z0-9_-]+)\s*:\s*(.*)$`)

// IgnoreDirective is one parsed suppression comment. consumed flips to true
// the first time it suppresses a finding; a consumed directive never
// suppresses a second one.
type IgnoreDirective struct {
	RuleID string
	Reason string
	Line   int

	consumed bool
}

// ParseIgnoreDirectives extracts the unit's suppression directives from its
// raw text lines, in line order.
func ParseIgnoreDirectives(unit *SourceUnit) []*IgnoreDirective {
	if unit == nil {
		return nil
	}
	var directives []*IgnoreDirective
	for i, line := range unit.Lines {
		m := ignorePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		reason := strings.TrimSpace(m[2])
		if reason == "" {
			continue
		}
		directives = append(directives, &IgnoreDirective{
			RuleID: strings.ToUpper(m[1]),
			Reason: reason,
			Line:   i + 1,
		})
	}
	return directives
}

// ignoreResolver owns one scan's directive collection, keyed by normalized
// file path. Directive state lives and dies with the scan invocation.
type ignoreResolver struct {
	byFile map[string][]*IgnoreDirective
}

func newIgnoreResolver() *ignoreResolver {
	return &ignoreResolver{byFile: map[string][]*IgnoreDirective{}}
}

// addDirectives copies directives into the resolver so consumed state stays
// scan-local even when the parsed directives come from a shared cache.
func (r *ignoreResolver) addDirectives(path string, directives []*IgnoreDirective) {
	if len(directives) == 0 {
		return
	}
	key := finding.NormalizePath(path)
	for _, d := range directives {
		copied := *d
		copied.consumed = false
		r.byFile[key] = append(r.byFile[key], &copied)
	}
}

// resolve splits findings into active and ignored. Findings must already be
// globally sorted by (normalized file, line); each directive suppresses at
// most the first unsuppressed finding with its rule ID strictly below it.
func (r *ignoreResolver) resolve(findings []finding.Finding) ([]finding.Finding, []finding.Ignored) {
	active := make([]finding.Finding, 0, len(findings))
	var ignored []finding.Ignored

	for _, f := range findings {
		directive := r.match(f)
		if directive == nil {
			active = append(active, f)
			continue
		}
		directive.consumed = true
		ignored = append(ignored, finding.Ignored{
			Finding:        f,
			Reason:         directive.Reason,
			AnnotationLine: directive.Line,
		})
	}
	return active, ignored
}

// match finds the first unconsumed directive in the finding's file with the
// same rule ID on a line strictly before the flagged code.
func (r *ignoreResolver) match(f finding.Finding) *IgnoreDirective {
	for _, d := range r.byFile[finding.NormalizePath(f.File)] {
		if d.consumed {
			continue
		}
		if !strings.EqualFold(d.RuleID, f.RuleID) {
			continue
		}
		if d.Line < f.Line {
			return d
		}
	}
	return nil
}
