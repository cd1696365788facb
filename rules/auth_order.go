package rules

import (
	"fmt"
	"strings"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

// handlerParams mark a function as request-handler-shaped.
var handlerParams = map[string]struct{}{
	"req":     {},
	"request": {},
	"ctx":     {},
}

// authVocabulary marks a call as an authentication check.
var authVocabulary = []string{"auth", "isauthenticated", "requireauth"}

type authOrder struct {
	secureai.MetaData
}

// Evaluate walks each request handler's calls in source order with a
// monotonic authSeen flag: once an auth-shaped call is seen the handler is
// authenticated for the rest of its body (Unauthenticated -> Authenticated,
// terminal). LLM calls made before that transition are flagged.
func (r *authOrder) Evaluate(unit *secureai.SourceUnit) []finding.Finding {
	var out []finding.Finding
	eachFunction(unit, func(fn *secureai.Node) {
		requestParam, ok := handlerParam(fn)
		if !ok {
			return
		}

		authSeen := false
		eachCall(fn.ChildByField("body"), false, func(call *secureai.Node) {
			callee := strings.ToLower(call.CalleeText())
			if isAuthCall(callee) {
				authSeen = true
				return
			}
			if authSeen || !isLLMCall(callee) {
				return
			}
			out = append(out, r.NewFinding(unit, call.Line(),
				"LLM call made before any authentication check",
				"The handler reaches a model before verifying the caller's identity, so "+
					"unauthenticated traffic can consume the model and exfiltrate its context.",
				fmt.Sprintf("Authenticate the request (e.g. requireAuth(%s)) before invoking the model.", requestParam),
				finding.Signals{
					DirectUserInput:     true,
					RequestObjectSource: requestParam != "ctx",
					ConfirmedLLMCall:    true,
				}))
		})
	})
	return out
}

// handlerParam reports whether the function has a request-like parameter
// and returns its name.
func handlerParam(fn *secureai.Node) (string, bool) {
	for _, name := range fn.ParamNames() {
		if _, ok := handlerParams[name]; ok {
			return name, true
		}
	}
	return "", false
}

func isAuthCall(callee string) bool {
	for _, term := range authVocabulary {
		if strings.Contains(callee, term) {
			return true
		}
	}
	return false
}

// NewAuthOrder builds the LLM-call-before-authentication rule.
func NewAuthOrder(id string, _ secureai.Config) secureai.Rule {
	return &authOrder{
		MetaData: secureai.MetaData{
			RuleID:    id,
			RuleTitle: "LLM invoked before authentication",
			Sev:       finding.High,
		},
	}
}
