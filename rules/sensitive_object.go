package rules

import (
	"fmt"
	"strings"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

// sensitiveObjects are object names whose wholesale transmission to a model
// is flagged.
var sensitiveObjects = map[string]struct{}{
	"user":     {},
	"profile":  {},
	"metadata": {},
	"session":  {},
	"request":  {},
	"payload":  {},
}

type sensitiveObject struct {
	secureai.MetaData
}

// Evaluate flags LLM calls whose prompt-bearing argument is (or contains) a
// bare reference to a sensitive object, or a JSON.stringify call that bulk
// serializes one.
func (r *sensitiveObject) Evaluate(unit *secureai.SourceUnit) []finding.Finding {
	root := unit.Root()
	if root == nil {
		return nil
	}
	var out []finding.Finding
	eachCall(root, false, func(call *secureai.Node) {
		if !isLLMCall(call.CalleeText()) {
			return
		}
		for _, arg := range promptArgs(call) {
			names, stringified := sensitiveContent(arg)
			if len(names) == 0 && !stringified {
				continue
			}
			summary := "Entire object serialized into LLM prompt via JSON.stringify"
			if len(names) > 0 {
				summary = fmt.Sprintf("Sensitive object (%s) sent to LLM", strings.Join(uniqueSorted(names), ", "))
			}
			out = append(out, r.NewFinding(unit, call.Line(), summary,
				"Passing whole objects to a model transmits every field they carry, including "+
					"ones the prompt never needed, to a third-party API.",
				"Select the specific fields the prompt requires instead of sending the object wholesale.",
				finding.Signals{
					DirectUserInput:     true,
					RequestObjectSource: len(names) > 0,
					ConfirmedLLMCall:    true,
				}))
		}
	})
	return out
}

// sensitiveContent reports the sensitive object names referenced wholesale
// by the argument and whether it contains a JSON.stringify call. An
// identifier that is the object of a member access does not count: selecting
// a field is exactly what the rule recommends.
func sensitiveContent(arg *secureai.Node) ([]string, bool) {
	if arg == nil {
		return nil, false
	}
	var names []string
	stringified := false
	arg.Walk(func(n *secureai.Node) bool {
		switch n.Kind() {
		case secureai.KindIdentifier:
			if parent := n.Parent(); parent != nil && parent.Kind() == secureai.KindMemberAccess {
				return true
			}
			if _, ok := sensitiveObjects[strings.ToLower(n.Text())]; ok {
				names = append(names, strings.ToLower(n.Text()))
			}
		case secureai.KindCall:
			if strings.EqualFold(n.CalleeText(), "json.stringify") {
				stringified = true
			}
		}
		return true
	})
	return names, stringified
}

// NewSensitiveObject builds the sensitive-object-sent-to-LLM rule.
func NewSensitiveObject(id string, _ secureai.Config) secureai.Rule {
	return &sensitiveObject{
		MetaData: secureai.MetaData{
			RuleID:    id,
			RuleTitle: "Bulk sensitive object transmitted to LLM",
			Sev:       finding.Medium,
		},
	}
}
