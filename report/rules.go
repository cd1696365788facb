package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// RuleRow is one line of the rule listing.
type RuleRow struct {
	ID          string
	Severity    string
	Description string
}

// WriteRules renders the rule listing as a table.
func WriteRules(w io.Writer, rows []RuleRow) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "SEVERITY", "DESCRIPTION")
	for _, row := range rows {
		if err := table.Append(row.ID, row.Severity, row.Description); err != nil {
			return err
		}
	}
	return table.Render()
}
