package main

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// Exit codes: clean, findings at or above the fail threshold, hard error.
const (
	exitClean    = 0
	exitFindings = 1
	exitError    = 2
)

var verbose bool

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "secureai",
		Short:         "Static scanner for risky LLM API usage in JavaScript/TypeScript",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newScanCommand())
	root.AddCommand(newBaselineCommand())
	root.AddCommand(newRulesCommand())
	return root
}

func newLogger() hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "secureai",
		Level: level,
	})
}
