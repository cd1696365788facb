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
	"sort"

	"github.com/secureai/secureai/finding"
)

// Deduplicate collapses findings sharing a canonical key. The first
// occurrence per key wins; input order is otherwise preserved.
func Deduplicate(findings []finding.Finding) []finding.Finding {
	seen := make(map[finding.Key]struct{}, len(findings))
	out := make([]finding.Finding, 0, len(findings))
	for _, f := range findings {
		k := finding.KeyOf(f)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

// SortFindings orders findings by (normalized file, line) ascending. The
// global sort makes dedupe and ignore matching independent of rule
// execution order. The sort is stable so equal-position findings keep
// their rule order.
func SortFindings(findings []finding.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		fi := finding.NormalizePath(findings[i].File)
		fj := finding.NormalizePath(findings[j].File)
		if fi != fj {
			return fi < fj
		}
		return findings[i].Line < findings[j].Line
	})
}
