package secureai_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
	"github.com/secureai/secureai/rules"
)

const chatHandlerSrc = `
// secureai-ignore AI002: log call reviewed, values are redacted upstream
async function handleChat(req, res) {
  const name = req.body.name;
  console.log("prompt for " + name);
  const result = await openai.chat.completions.create({
    messages: [{ role: "user", content: ` + "`Summarize the account of ${name}`" + ` }],
  });
  res.json(result);
}
`

func parseUnits(t *testing.T, sources map[string]string) []*secureai.SourceUnit {
	t.Helper()
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}
	// Deterministic order keeps run-to-run comparisons honest.
	sort.Strings(paths)
	units := make([]*secureai.SourceUnit, 0, len(sources))
	for _, path := range paths {
		unit, err := secureai.ParseSource(context.Background(), path, []byte(sources[path]))
		if err != nil {
			t.Fatalf("parse %s failed: %v", path, err)
		}
		units = append(units, unit)
	}
	return units
}

func newTestScanner(t *testing.T) *secureai.Scanner {
	t.Helper()
	conf := secureai.NewConfig()
	s := secureai.New(conf, nil)
	s.LoadRules(rules.Generate(conf)...)
	return s
}

func TestScanEndToEnd(t *testing.T) {
	t.Parallel()

	units := parseUnits(t, map[string]string{"src/chat.js": chatHandlerSrc})
	result := newTestScanner(t).Scan(units)

	byRule := map[string]int{}
	for _, f := range result.Findings {
		byRule[f.RuleID]++
	}
	if byRule["AI001"] != 1 {
		t.Fatalf("expected one prompt-injection finding, got %+v", byRule)
	}
	if byRule["AI003"] != 1 {
		t.Fatalf("expected one auth-order finding, got %+v", byRule)
	}
	if byRule["LLM001"] != 1 {
		t.Fatalf("expected one inventory finding, got %+v", byRule)
	}
	if byRule["AI002"] != 0 {
		t.Fatalf("logging finding should be suppressed by the directive, got %+v", byRule)
	}

	if len(result.Ignored) != 1 || result.Ignored[0].Finding.RuleID != "AI002" {
		t.Fatalf("expected the AI002 suppression to be recorded, got %+v", result.Ignored)
	}
	if result.Ignored[0].Reason == "" {
		t.Fatalf("suppression reason must carry through")
	}

	if result.Metrics.NumFindings != len(result.Findings) {
		t.Fatalf("metrics disagree with findings: %+v", result.Metrics)
	}
	if result.Metrics.RiskFindings != result.Metrics.NumFindings-byRule["LLM001"] {
		t.Fatalf("inventory findings must not count as risk: %+v", result.Metrics)
	}
	if result.Metrics.NumFiles != 1 {
		t.Fatalf("unexpected file count: %+v", result.Metrics)
	}
	if result.RunID == "" {
		t.Fatalf("result must carry a run ID")
	}
}

func TestScanIsIdempotent(t *testing.T) {
	t.Parallel()

	units := parseUnits(t, map[string]string{"src/chat.js": chatHandlerSrc})
	scanner := newTestScanner(t)

	first := scanner.Scan(units)
	second := scanner.Scan(units)

	if len(first.Findings) != len(second.Findings) {
		t.Fatalf("finding count changed between runs: %d vs %d",
			len(first.Findings), len(second.Findings))
	}
	if len(first.Ignored) != len(second.Ignored) {
		t.Fatalf("suppression count changed between runs: %d vs %d",
			len(first.Ignored), len(second.Ignored))
	}
	for i := range first.Findings {
		if finding.KeyOf(first.Findings[i]) != finding.KeyOf(second.Findings[i]) {
			t.Fatalf("finding order or identity changed between runs")
		}
	}
}

func TestScanDeduplicatesAcrossCompiledTwins(t *testing.T) {
	t.Parallel()

	src := `
function ask(userInput) {
  return anthropic.messages.create({
    messages: [{ role: "user", content: "Do this: " + userInput }],
  });
}
`
	units := parseUnits(t, map[string]string{
		"src/ask.ts":  src,
		"dist/ask.js": src,
	})
	result := newTestScanner(t).Scan(units)

	count := 0
	for _, f := range result.Findings {
		if f.RuleID == "AI001" {
			count++
		}
	}
	// dist/ and src/ differ as normalized paths, so both survive; the same
	// file under two extensions would not.
	if count != 2 {
		t.Fatalf("expected 2 AI001 findings across distinct dirs, got %d", count)
	}

	twins := parseUnits(t, map[string]string{
		"src/ask.ts": src,
		"src/ask.js": src,
	})
	result = newTestScanner(t).Scan(twins)
	count = 0
	for _, f := range result.Findings {
		if f.RuleID == "AI001" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected compiled-twin findings to collapse to 1, got %d", count)
	}
}

func TestScanWithBaselineNarrowsToNewFindings(t *testing.T) {
	t.Parallel()

	units := parseUnits(t, map[string]string{"src/chat.js": chatHandlerSrc})
	scanner := newTestScanner(t)
	baselinePath := filepath.Join(t.TempDir(), "baseline.json")

	first, err := scanner.ScanWithBaseline(units, baselinePath)
	if err != nil {
		t.Fatalf("first baseline run failed: %v", err)
	}
	if first.Baseline == nil || !first.Baseline.Created {
		t.Fatalf("first run should create the baseline, got %+v", first.Baseline)
	}

	second, err := scanner.ScanWithBaseline(units, baselinePath)
	if err != nil {
		t.Fatalf("second baseline run failed: %v", err)
	}
	if second.Baseline.Created {
		t.Fatalf("second run must not recreate the baseline")
	}
	if len(second.Findings) != 0 {
		t.Fatalf("unchanged scan should yield an empty working set, got %+v", second.Findings)
	}
	if second.Baseline.NewOrRegressed != 0 {
		t.Fatalf("unexpected regressions: %+v", second.Baseline)
	}
}
