package rules

import (
	"fmt"
	"strings"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

// loggerShapes are the callee prefixes treated as logging sinks.
var loggerShapes = []string{"console.", "logger."}

// sensitiveNames flag credentials and PII in logged arguments.
var sensitiveNames = []string{"email", "token", "password", "apikey", "api_key"}

// promptNames flag prompt/response material in logged arguments.
var promptNames = []string{"prompt", "messages", "completion", "response", "output"}

type sensitiveLogging struct {
	secureai.MetaData
}

// Evaluate flags logger calls whose arguments reference sensitive names or
// prompt/response material. One finding per qualifying call.
func (r *sensitiveLogging) Evaluate(unit *secureai.SourceUnit) []finding.Finding {
	root := unit.Root()
	if root == nil {
		return nil
	}
	var out []finding.Finding
	eachCall(root, false, func(call *secureai.Node) {
		callee := strings.ToLower(call.CalleeText())
		if !isLoggerCall(callee) {
			return
		}

		var sensitiveHits, promptHits []string
		hasTemplate, hasRequestRef := false, false
		for _, arg := range call.Arguments() {
			text := strings.ToLower(arg.Text())
			for _, term := range sensitiveNames {
				if strings.Contains(text, term) {
					sensitiveHits = append(sensitiveHits, term)
				}
			}
			for _, term := range promptNames {
				if strings.Contains(text, term) {
					promptHits = append(promptHits, term)
				}
			}
			if arg.Kind() == secureai.KindTemplateLiteral || isConcatenation(arg) {
				hasTemplate = true
			}
			if root := arg.RootIdentifier(); root == "req" || root == "request" {
				hasRequestRef = true
			}
		}
		if len(sensitiveHits) == 0 && len(promptHits) == 0 {
			return
		}

		matched := uniqueSorted(append(sensitiveHits, promptHits...))
		out = append(out, r.NewFinding(unit, call.Line(),
			fmt.Sprintf("Sensitive data (%s) passed to %s", strings.Join(matched, ", "), loggerName(callee)),
			"Logging prompt or credential material leaks user data and model context into log "+
				"storage, where retention and access controls are usually weaker.",
			"Redact sensitive fields before logging, or log opaque identifiers instead of values.",
			finding.Signals{
				DirectUserInput:        len(sensitiveHits) > 0,
				StringConcatOrTemplate: hasTemplate,
				RequestObjectSource:    hasRequestRef,
				ConfirmedLLMCall:       len(promptHits) > 0,
			}))
	})
	return out
}

func isLoggerCall(callee string) bool {
	for _, shape := range loggerShapes {
		if strings.HasPrefix(callee, shape) {
			return true
		}
	}
	return false
}

func loggerName(callee string) string {
	if i := strings.IndexByte(callee, '.'); i > 0 {
		return callee[:i]
	}
	return callee
}

// NewSensitiveLogging builds the sensitive-data logging rule.
func NewSensitiveLogging(id string, _ secureai.Config) secureai.Rule {
	return &sensitiveLogging{
		MetaData: secureai.MetaData{
			RuleID:    id,
			RuleTitle: "Sensitive prompt or credential data logged",
			Sev:       finding.Medium,
		},
	}
}
