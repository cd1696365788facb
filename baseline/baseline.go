// Package baseline persists a snapshot of findings and classifies later
// runs' findings as new-or-regressed versus previously seen. The baseline
// file is the only cross-invocation state in the scanner; it is created
// explicitly, read strictly, and never silently migrated.
package baseline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/secureai/secureai/finding"
)

// Schema is the literal version tag a baseline file must carry. A mismatch
// is a hard error; silently treating an old baseline as empty would mask
// regressions.
const Schema = "secureai/baseline@v1"

// confidenceEpsilon makes the "confidence increased" test float-safe.
const confidenceEpsilon = 1e-6

var (
	// ErrSchemaMismatch reports a baseline with the wrong schema tag.
	ErrSchemaMismatch = errors.New("baseline schema mismatch")
	// ErrMalformed reports a baseline that fails shape validation.
	ErrMalformed = errors.New("malformed baseline file")
)

// Entry is the persisted minimal identity and strength of a finding.
type Entry struct {
	RuleID     string  `json:"rule_id"`
	File       string  `json:"file"`
	Line       int     `json:"line"`
	Severity   string  `json:"severity"`
	Confidence float64 `json:"confidence"`
}

func (e Entry) key() string {
	return e.RuleID + "|" + finding.NormalizePath(e.File) + "|" + strconv.Itoa(e.Line)
}

func entryKeyOf(f finding.Finding) string {
	return f.RuleID + "|" + finding.NormalizePath(f.File) + "|" + strconv.Itoa(f.Line)
}

// File is the on-disk baseline document.
type File struct {
	Schema      string  `json:"schema"`
	CreatedAt   string  `json:"createdAt"`
	Fingerprint string  `json:"fingerprint,omitempty"`
	Findings    []Entry `json:"findings"`
}

// Summary reports the outcome of a baseline diff.
type Summary struct {
	Created        bool `json:"created"`
	BaselineCount  int  `json:"baseline_count"`
	CurrentCount   int  `json:"current_count"`
	NewOrRegressed int  `json:"new_or_regressed"`
}

// fileSchema validates the document shape before decoding, so a truncated
// or hand-edited baseline fails loudly instead of decoding to zero values.
const fileSchema = `{
  "type": "object",
  "required": ["schema", "createdAt", "findings"],
  "properties": {
    "schema": {"type": "string"},
    "createdAt": {"type": "string"},
    "fingerprint": {"type": "string"},
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["rule_id", "file", "line", "severity", "confidence"],
        "properties": {
          "rule_id": {"type": "string"},
          "file": {"type": "string"},
          "line": {"type": "integer"},
          "severity": {"type": "string"},
          "confidence": {"type": "number"}
        }
      }
    }
  }
}`

func compiledSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(fileSchema))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("baseline.schema.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("baseline.schema.json")
}

// Create writes a new baseline at path from the given findings, sorted by
// canonical key ascending.
func Create(path string, findings []finding.Finding) error {
	entries := make([]Entry, 0, len(findings))
	for _, f := range findings {
		entries = append(entries, Entry{
			RuleID:     f.RuleID,
			File:       finding.NormalizePath(f.File),
			Line:       f.Line,
			Severity:   f.Severity.String(),
			Confidence: f.Confidence,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key() < entries[j].key() })

	doc := File{
		Schema:      Schema,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Fingerprint: fingerprint(entries),
		Findings:    entries,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding baseline: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing baseline: %w", err)
	}
	return nil
}

// Load reads and strictly validates a baseline file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling baseline schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var doc File
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Schema != Schema {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrSchemaMismatch, doc.Schema, Schema)
	}
	return &doc, nil
}

// Diff classifies the current findings against the baseline at path.
//
// If no baseline exists it is created and every current finding is returned
// as new. Otherwise the returned working set contains only findings that are
// absent from the baseline, carry a strictly higher severity rank, or whose
// confidence increased beyond the epsilon. Diff runs never rewrite the
// baseline file.
func Diff(path string, current []finding.Finding) ([]finding.Finding, *Summary, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Create(path, current); err != nil {
			return nil, nil, err
		}
		return current, &Summary{
			Created:        true,
			BaselineCount:  len(current),
			CurrentCount:   len(current),
			NewOrRegressed: len(current),
		}, nil
	}

	doc, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	byKey := make(map[string]Entry, len(doc.Findings))
	for _, e := range doc.Findings {
		byKey[e.key()] = e
	}

	var working []finding.Finding
	for _, f := range current {
		prev, seen := byKey[entryKeyOf(f)]
		if !seen {
			working = append(working, f)
			continue
		}
		if f.Severity > finding.ParseSeverity(prev.Severity) {
			working = append(working, f)
			continue
		}
		if f.Confidence > prev.Confidence+confidenceEpsilon {
			working = append(working, f)
		}
	}

	return working, &Summary{
		BaselineCount:  len(doc.Findings),
		CurrentCount:   len(current),
		NewOrRegressed: len(working),
	}, nil
}

// fingerprint hashes the sorted entry keys for integrity reporting.
func fingerprint(entries []Entry) string {
	h := xxhash.New()
	for _, e := range entries {
		_, _ = h.WriteString(e.key())
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
