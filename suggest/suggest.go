// Package suggest annotates findings with AI-generated remediation text.
// It is strictly optional and fail-open: provider errors leave findings
// unannotated and never fail a scan.
package suggest

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/secureai/secureai/finding"
)

// Provider produces a remediation paragraph for one finding.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, f finding.Finding) (string, error)
}

// NewProvider selects a provider by name: "openai", "anthropic", or
// "gemini".
func NewProvider(name, apiKey string) (Provider, error) {
	switch name {
	case "openai":
		return newOpenAIProvider(apiKey), nil
	case "anthropic":
		return newAnthropicProvider(apiKey), nil
	case "gemini":
		return newGeminiProvider(apiKey), nil
	}
	return nil, fmt.Errorf("unknown suggestion provider %q", name)
}

// Annotate fills each finding's Suggestion field in place. Per-finding
// provider errors are logged and skipped.
func Annotate(ctx context.Context, p Provider, log hclog.Logger, findings []finding.Finding) {
	if p == nil || len(findings) == 0 {
		return
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	for i := range findings {
		text, err := p.Suggest(ctx, findings[i])
		if err != nil {
			log.Warn("suggestion provider failed", "provider", p.Name(),
				"rule", findings[i].RuleID, "error", err)
			continue
		}
		findings[i].Suggestion = text
	}
}

// remediationPrompt frames one finding for the model. The finding carries
// no source snippet, only its own metadata, so no scanned code leaves the
// machine.
func remediationPrompt(f finding.Finding) string {
	return fmt.Sprintf(
		"You are reviewing a static-analysis finding in a JavaScript/TypeScript codebase.\n"+
			"Rule: %s (%s)\nSeverity: %s\nFile: %s line %d\nSummary: %s\n\n"+
			"Write one short paragraph telling the developer how to remediate this. "+
			"Be concrete and do not restate the finding.",
		f.RuleID, f.Title, f.Severity, f.File, f.Line, f.Summary)
}
