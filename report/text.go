package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

func writeText(w io.Writer, res *secureai.Result) error {
	color.Fprintf(w, "<bold>secureai</> run %s: scanned %d files (%d lines)\n\n",
		res.RunID, res.Metrics.NumFiles, res.Metrics.NumLines)

	if len(res.Findings) == 0 {
		color.Fprintf(w, "<green>No findings.</>\n")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("RULE", "SEVERITY", "CONF", "LOCATION", "SUMMARY")
		for _, f := range res.Findings {
			if err := table.Append(
				f.RuleID,
				severityLabel(f.Severity),
				fmt.Sprintf("%.2f", f.Confidence),
				f.File+":"+strconv.Itoa(f.Line),
				f.Summary,
			); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n%d risk finding(s), %d inventory, %d ignored\n",
		res.Metrics.RiskFindings,
		res.Metrics.NumFindings-res.Metrics.RiskFindings,
		res.Metrics.NumIgnored)

	if res.Baseline != nil {
		if res.Baseline.Created {
			color.Fprintf(w, "<cyan>Baseline created with %d finding(s).</>\n", res.Baseline.BaselineCount)
		} else {
			color.Fprintf(w, "Baseline: %d entries, <bold>%d new or regressed</>\n",
				res.Baseline.BaselineCount, res.Baseline.NewOrRegressed)
		}
	}
	return nil
}

func severityLabel(sev finding.Severity) string {
	switch sev {
	case finding.Critical:
		return color.Red.Render("CRITICAL")
	case finding.High:
		return color.LightRed.Render("HIGH")
	case finding.Medium:
		return color.Yellow.Render("MEDIUM")
	}
	return color.Gray.Render("LOW")
}
