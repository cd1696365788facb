package rules

import (
	"fmt"
	"strings"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

// sdkShape is one known SDK invocation shape, matched against the lowercased
// callee text.
type sdkShape struct {
	label string
	match func(callee string) bool
}

var sdkShapes = []sdkShape{
	{"openai.chat.completions.create", func(c string) bool { return strings.Contains(c, "openai.chat.completions.create") }},
	{"openai.chatcompletion.create", func(c string) bool { return strings.Contains(c, "openai.chatcompletion.create") }},
	{"messages.create", func(c string) bool { return strings.HasSuffix(c, ".messages.create") || c == "messages.create" }},
	{"generatecontent", func(c string) bool { return strings.Contains(c, "generatecontent") }},
}

type sdkInventory struct {
	secureai.MetaData
}

// Evaluate records every call matching a known LLM SDK shape. Informational
// only: the LLM rule-ID prefix keeps these out of the risk count.
func (r *sdkInventory) Evaluate(unit *secureai.SourceUnit) []finding.Finding {
	root := unit.Root()
	if root == nil {
		return nil
	}
	var out []finding.Finding
	eachCall(root, false, func(call *secureai.Node) {
		callee := strings.ToLower(call.CalleeText())
		for _, shape := range sdkShapes {
			if !shape.match(callee) {
				continue
			}
			out = append(out, r.NewFinding(unit, call.Line(),
				fmt.Sprintf("LLM SDK call (%s)", shape.label),
				"This file invokes a large-language-model SDK. Inventory signal only, not a vulnerability.",
				"No action needed; use the inventory to focus review on code paths that reach a model.",
				finding.Signals{ConfirmedLLMCall: true}))
			break
		}
	})
	return out
}

// NewSDKInventory builds the LLM-SDK-usage inventory rule.
func NewSDKInventory(id string, _ secureai.Config) secureai.Rule {
	return &sdkInventory{
		MetaData: secureai.MetaData{
			RuleID:    id,
			RuleTitle: "LLM SDK usage inventory",
			Sev:       finding.Low,
		},
	}
}
