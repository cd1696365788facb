package main

import (
	"fmt"

	"github.com/spf13/cobra"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/baseline"
	"github.com/secureai/secureai/rules"
)

func newBaselineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the accepted-findings baseline",
	}
	cmd.AddCommand(newBaselineWriteCommand("create", "Scan and record current findings as the baseline"))
	cmd.AddCommand(newBaselineWriteCommand("update", "Rescan and overwrite the baseline with current findings"))
	return cmd
}

// create and update share an implementation: both scan and write the
// full current finding set. They are separate verbs so CI configs read
// honestly.
func newBaselineWriteCommand(verb, short string) *cobra.Command {
	var baselinePath string
	var excludes []string
	cmd := &cobra.Command{
		Use:   verb + " [path]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			log := newLogger()

			loader := secureai.NewLoader(log, secureai.WithExcludes(excludes...))
			units, err := loader.Load(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("loading corpus: %w", err)
			}

			conf := secureai.NewConfig()
			scanner := secureai.New(conf, log)
			scanner.LoadRules(rules.Generate(conf)...)
			result := scanner.Scan(units)

			if err := baseline.Create(baselinePath, result.Findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "baseline written to %s with %d finding(s)\n",
				baselinePath, len(result.Findings))
			return nil
		},
	}
	cmd.Flags().StringVarP(&baselinePath, "baseline", "b", ".secureai-baseline.json", "baseline file to write")
	cmd.Flags().StringArrayVarP(&excludes, "exclude", "e", nil, "glob patterns of paths to skip")
	return cmd
}
