package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
	"github.com/secureai/secureai/registry"
	"github.com/secureai/secureai/report"
	"github.com/secureai/secureai/rules"
	"github.com/secureai/secureai/suggest"
)

type scanOptions struct {
	format       string
	output       string
	baselinePath string
	configPath   string
	failOn       string
	excludes     []string
	provider     string
	checkDeps    bool
}

func newScanCommand() *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a source tree for risky LLM API usage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runScan(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", report.FormatText, "output format: text, json, sarif, markdown")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.baselinePath, "baseline", "b", "", "diff findings against a baseline file")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "medium", "exit non-zero when risk findings at or above this severity exist")
	cmd.Flags().StringArrayVarP(&opts.excludes, "exclude", "e", nil, "glob patterns of paths to skip")
	cmd.Flags().StringVar(&opts.provider, "suggest", "", "annotate findings with AI remediation text: openai, anthropic, gemini")
	cmd.Flags().BoolVar(&opts.checkDeps, "check-deps", false, "check package.json AI SDK dependencies against the npm registry")
	return cmd
}

func runScan(cmd *cobra.Command, root string, opts *scanOptions) error {
	log := newLogger()

	conf := secureai.NewConfig()
	if opts.configPath != "" {
		loaded, err := secureai.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		conf = loaded
	}

	loader := secureai.NewLoader(log, secureai.WithExcludes(opts.excludes...))
	units, err := loader.Load(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	scanner := secureai.New(conf, log)
	scanner.LoadRules(rules.Generate(conf)...)

	var result *secureai.Result
	if opts.baselinePath != "" {
		result, err = scanner.ScanWithBaseline(units, opts.baselinePath)
		if err != nil {
			return err
		}
	} else {
		result = scanner.Scan(units)
	}

	if opts.provider != "" {
		annotate(cmd, log, opts.provider, result)
	}
	if opts.checkDeps {
		checkDependencies(cmd, log, root)
	}

	out := io.Writer(cmd.OutOrStdout())
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out, opts.format, result); err != nil {
		return err
	}

	if shouldFail(result, opts.failOn) {
		os.Exit(exitFindings)
	}
	return nil
}

func annotate(cmd *cobra.Command, log hclog.Logger, providerName string, result *secureai.Result) {
	provider, err := suggest.NewProvider(providerName, apiKeyFor(providerName))
	if err != nil {
		log.Warn("suggestions disabled", "error", err)
		return
	}
	suggest.Annotate(cmd.Context(), provider, log, result.Findings)
}

func apiKeyFor(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

func checkDependencies(cmd *cobra.Command, log hclog.Logger, root string) {
	manifest := filepath.Join(root, "package.json")
	if _, err := os.Stat(manifest); err != nil {
		log.Debug("no package.json, skipping dependency check", "root", root)
		return
	}
	client := registry.NewClient(log)
	issues, err := client.CheckDependencies(cmd.Context(), manifest)
	if err != nil {
		log.Debug("dependency check failed open", "error", err)
		return
	}
	for _, issue := range issues {
		switch issue.Kind {
		case "typosquat":
			color.Fprintf(cmd.ErrOrStderr(),
				"<yellow>warning:</> dependency %q is %d edit(s) from %q, possible typosquat\n",
				issue.Dependency, issue.Distance, issue.Similar)
		case "missing":
			color.Fprintf(cmd.ErrOrStderr(),
				"<yellow>warning:</> dependency %q not found on the npm registry\n", issue.Dependency)
		}
	}
}

// shouldFail applies the fail-on threshold to risk findings only; the
// inventory rule never fails a build.
func shouldFail(result *secureai.Result, failOn string) bool {
	threshold := finding.ParseSeverity(failOn)
	for _, f := range result.Findings {
		if secureai.IsInventoryRule(f.RuleID) {
			continue
		}
		if f.Severity >= threshold {
			return true
		}
	}
	return false
}
