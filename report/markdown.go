package report

import (
	"fmt"
	"io"

	secureai "github.com/secureai/secureai"
)

func writeMarkdown(w io.Writer, res *secureai.Result) error {
	if _, err := fmt.Fprintf(w, "# secureai scan report\n\n"); err != nil {
		return err
	}
	fmt.Fprintf(w, "- Files scanned: %d\n", res.Metrics.NumFiles)
	fmt.Fprintf(w, "- Findings: %d (%d risk, %d inventory)\n",
		res.Metrics.NumFindings, res.Metrics.RiskFindings,
		res.Metrics.NumFindings-res.Metrics.RiskFindings)
	fmt.Fprintf(w, "- Ignored: %d\n", res.Metrics.NumIgnored)
	if res.Baseline != nil {
		if res.Baseline.Created {
			fmt.Fprintf(w, "- Baseline: created (%d findings recorded)\n", res.Baseline.BaselineCount)
		} else {
			fmt.Fprintf(w, "- Baseline: %d entries, %d new or regressed\n",
				res.Baseline.BaselineCount, res.Baseline.NewOrRegressed)
		}
	}
	fmt.Fprintln(w)

	if len(res.Findings) > 0 {
		fmt.Fprintf(w, "## Findings\n\n")
		for _, f := range res.Findings {
			fmt.Fprintf(w, "### %s: %s\n\n", f.RuleID, f.Title)
			fmt.Fprintf(w, "- **Location**: `%s:%d`\n", f.File, f.Line)
			fmt.Fprintf(w, "- **Severity**: %s\n", f.Severity)
			fmt.Fprintf(w, "- **Confidence**: %.2f\n", f.Confidence)
			fmt.Fprintf(w, "- **Summary**: %s\n\n", f.Summary)
			fmt.Fprintf(w, "%s\n\n**Recommendation**: %s\n\n", f.Description, f.Recommendation)
			if f.Suggestion != "" {
				fmt.Fprintf(w, "**Suggested fix**: %s\n\n", f.Suggestion)
			}
		}
	}

	if len(res.Ignored) > 0 {
		fmt.Fprintf(w, "## Suppressed findings\n\n")
		for _, ig := range res.Ignored {
			fmt.Fprintf(w, "- %s at `%s:%d`: %q (directive on line %d)\n",
				ig.Finding.RuleID, ig.Finding.File, ig.Finding.Line, ig.Reason, ig.AnnotationLine)
		}
		fmt.Fprintln(w)
	}
	return nil
}
