package main

import (
	"github.com/spf13/cobra"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/report"
	"github.com/secureai/secureai/rules"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in detection rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := secureai.NewConfig()
			instances := make(map[string]secureai.Rule)
			for _, r := range rules.Generate(conf) {
				instances[r.ID()] = r
			}
			rows := make([]report.RuleRow, 0, len(instances))
			for _, def := range rules.Definitions() {
				row := report.RuleRow{ID: def.ID, Description: def.Description}
				if r, ok := instances[def.ID]; ok {
					row.Severity = r.Severity().String()
				}
				rows = append(rows, row)
			}
			return report.WriteRules(cmd.OutOrStdout(), rows)
		},
	}
}
