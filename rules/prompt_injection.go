package rules

import (
	"fmt"
	"strings"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
	"github.com/secureai/secureai/promptrisk"
	"github.com/secureai/secureai/taint"
)

type promptInjection struct {
	secureai.MetaData
	tracker *taint.Tracker
}

// Evaluate flags LLM calls whose prompt-bearing argument is a string
// concatenation or template literal referencing a tainted identifier from
// the call's immediate function scope.
func (r *promptInjection) Evaluate(unit *secureai.SourceUnit) []finding.Finding {
	var out []finding.Finding
	eachFunction(unit, func(fn *secureai.Node) {
		scope := r.tracker.ScopeOf(fn)
		if scope.Empty() {
			return
		}
		eachCall(fn.ChildByField("body"), true, func(call *secureai.Node) {
			if !isLLMCall(call.CalleeText()) {
				return
			}
			for _, arg := range promptArgs(call) {
				if f, ok := r.check(unit, call, arg, scope); ok {
					out = append(out, f)
				}
			}
		})
	})
	return out
}

func (r *promptInjection) check(unit *secureai.SourceUnit, call, arg *secureai.Node, scope *taint.Scope) (finding.Finding, bool) {
	if arg == nil {
		return finding.Finding{}, false
	}
	isTemplate := arg.Kind() == secureai.KindTemplateLiteral
	if !isTemplate && !isConcatenation(arg) {
		return finding.Finding{}, false
	}

	var tainted []string
	fromParam, fromRequest := false, false
	for _, id := range arg.Identifiers() {
		switch scope.ClassOf(id) {
		case taint.Parameter:
			fromParam = true
			tainted = append(tainted, id)
		case taint.RequestDerived:
			fromRequest = true
			tainted = append(tainted, id)
		}
	}
	if len(tainted) == 0 {
		return finding.Finding{}, false
	}

	summary := fmt.Sprintf("Tainted input (%s) is interpolated into an LLM prompt",
		strings.Join(uniqueSorted(tainted), ", "))
	description := "User-controlled data is concatenated or interpolated into the prompt of an LLM call, " +
		"allowing an attacker to inject instructions into the model context."
	// Annotation only. The keyword score never feeds the confidence signals.
	if a := promptrisk.Assess(arg.Text()); a.Score > 0 {
		description += fmt.Sprintf(" The static prompt text already matches injection phrasing (%s).",
			strings.Join(a.Matched, ", "))
	}
	return r.NewFinding(unit, call.Line(), summary, description,
		"Separate user input from instructions: pass it as structured data or a dedicated user "+
			"message, and validate or constrain it before it reaches the model.",
		finding.Signals{
			DirectUserInput:        fromParam,
			StringConcatOrTemplate: true,
			RequestObjectSource:    fromRequest,
			ConfirmedLLMCall:       true,
		}), true
}

// NewPromptInjection builds the prompt-injection-by-concatenation rule.
func NewPromptInjection(id string, _ secureai.Config) secureai.Rule {
	return &promptInjection{
		MetaData: secureai.MetaData{
			RuleID:    id,
			RuleTitle: "User input concatenated into LLM prompt",
			Sev:       finding.High,
		},
		tracker: taint.NewTracker(),
	}
}
