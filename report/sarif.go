package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

const informationURI = "https://github.com/secureai/secureai"

func writeSARIF(w io.Writer, res *secureai.Result) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("secureai", informationURI)
	for _, f := range res.Findings {
		rule := run.AddRule(f.RuleID).
			WithDescription(f.Title).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: sarifLevel(f.Severity),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.File)).
				WithRegion(sarif.NewRegion().WithStartLine(f.Line)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(f.Summary)).
			WithLevel(sarifLevel(f.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	doc.AddRun(run)

	return doc.PrettyWrite(w)
}

func sarifLevel(sev finding.Severity) string {
	switch sev {
	case finding.Critical, finding.High:
		return "error"
	case finding.Medium:
		return "warning"
	}
	return "note"
}
