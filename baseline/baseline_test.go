package baseline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/secureai/secureai/finding"
)

func sampleFindings() []finding.Finding {
	return []finding.Finding{
		{RuleID: "AI001", File: "src/chat.ts", Line: 12, Severity: finding.High, Confidence: 0.8},
		{RuleID: "AI002", File: "src/log.js", Line: 4, Severity: finding.Medium, Confidence: 0.5},
	}
}

func TestCreateAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Schema, doc.Schema)
	require.Len(t, doc.Findings, 2)
	require.NotEmpty(t, doc.CreatedAt)
	require.NotEmpty(t, doc.Fingerprint)

	// Paths are stored normalized.
	require.Equal(t, "src/chat", doc.Findings[0].File)
}

func TestDiffCreatesMissingBaseline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	working, summary, err := Diff(path, sampleFindings())
	require.NoError(t, err)
	require.True(t, summary.Created)
	require.Len(t, working, 2)

	_, err = os.Stat(path)
	require.NoError(t, err, "baseline file should exist after first diff")
}

func TestDiffUnchangedRunYieldsEmptyWorkingSet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))

	working, summary, err := Diff(path, sampleFindings())
	require.NoError(t, err)
	require.Empty(t, working)
	require.False(t, summary.Created)
	require.Equal(t, 2, summary.BaselineCount)
	require.Equal(t, 0, summary.NewOrRegressed)
}

func TestDiffFlagsNewFinding(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))

	current := append(sampleFindings(), finding.Finding{
		RuleID: "AI003", File: "src/api.ts", Line: 30, Severity: finding.High, Confidence: 0.7,
	})
	working, summary, err := Diff(path, current)
	require.NoError(t, err)
	require.Len(t, working, 1)
	require.Equal(t, "AI003", working[0].RuleID)
	require.Equal(t, 1, summary.NewOrRegressed)
}

func TestDiffFlagsSeverityRegression(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))

	current := sampleFindings()
	current[1].Severity = finding.Critical
	working, _, err := Diff(path, current)
	require.NoError(t, err)
	require.Len(t, working, 1)
	require.Equal(t, "AI002", working[0].RuleID)
}

func TestDiffConfidenceEpsilon(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))

	// Within epsilon: not a regression.
	current := sampleFindings()
	current[0].Confidence += 1e-9
	working, _, err := Diff(path, current)
	require.NoError(t, err)
	require.Empty(t, working)

	// Beyond epsilon: regression.
	current = sampleFindings()
	current[0].Confidence = 0.9
	working, _, err = Diff(path, current)
	require.NoError(t, err)
	require.Len(t, working, 1)
}

func TestDiffToleratesImprovements(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))

	current := sampleFindings()
	current[0].Severity = finding.Low
	current[0].Confidence = 0.1
	working, _, err := Diff(path, current)
	require.NoError(t, err)
	require.Empty(t, working, "lower severity and confidence is not a regression")
}

func TestDiffNeverRewritesBaseline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Create(path, sampleFindings()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	current := append(sampleFindings(), finding.Finding{
		RuleID: "AI005", File: "src/key.ts", Line: 2, Severity: finding.Critical, Confidence: 0.9,
	})
	_, _, err = Diff(path, current)
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	doc := `{"schema": "secureai/baseline@v2", "createdAt": "2026-01-01T00:00:00Z", "findings": []}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSchemaMismatch), "got %v", err)
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"truncated json":    `{"schema": "secureai/baseline@v1",`,
		"missing findings":  `{"schema": "secureai/baseline@v1", "createdAt": "2026-01-01T00:00:00Z"}`,
		"wrong entry shape": `{"schema": "secureai/baseline@v1", "createdAt": "x", "findings": [{"rule_id": "AI001"}]}`,
		"not an object":     `[1, 2, 3]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "baseline.json")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestDiffPropagatesLoadErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

	_, _, err := Diff(path, sampleFindings())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}
