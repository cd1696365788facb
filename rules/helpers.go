package rules

import (
	"sort"
	"strings"

	secureai "github.com/secureai/secureai"
)

// llmVocabulary is the SDK-name substring set that classifies a call as an
// LLM call. Deliberately broad: the classifier favors recall over precision.
var llmVocabulary = []string{
	"openai",
	"anthropic",
	"google",
	"gemini",
	"genai",
}

// isLLMCall reports whether callee text matches the LLM SDK vocabulary,
// case-insensitively.
func isLLMCall(callee string) bool {
	lc := strings.ToLower(callee)
	for _, term := range llmVocabulary {
		if strings.Contains(lc, term) {
			return true
		}
	}
	return false
}

// promptArgs extracts the prompt-bearing argument(s) of an LLM call: the
// single first argument, or, when the first argument is an object literal,
// the value of its "prompt" property and each "content" property of array
// elements under a "messages" property.
func promptArgs(call *secureai.Node) []*secureai.Node {
	args := call.Arguments()
	if len(args) == 0 {
		return nil
	}
	first := args[0]
	if first.Kind() != secureai.KindObjectLiteral {
		return []*secureai.Node{first}
	}

	var out []*secureai.Node
	for _, pair := range first.NamedChildren() {
		key, value := objectPair(pair)
		if value == nil {
			continue
		}
		switch key {
		case "prompt":
			out = append(out, value)
		case "messages":
			if value.Kind() != secureai.KindArrayLiteral {
				continue
			}
			for _, element := range value.NamedChildren() {
				if element.Kind() != secureai.KindObjectLiteral {
					continue
				}
				for _, msgPair := range element.NamedChildren() {
					if k, v := objectPair(msgPair); k == "content" && v != nil {
						out = append(out, v)
					}
				}
			}
		}
	}
	return out
}

// objectPair decodes an object-literal property into its key text and value
// node. Non-pair members (spreads, methods) yield an empty key.
func objectPair(pair *secureai.Node) (string, *secureai.Node) {
	if pair.GrammarType() != "pair" {
		return "", nil
	}
	key := pair.ChildByField("key")
	if key == nil {
		return "", nil
	}
	return strings.Trim(key.Text(), "\"'`"), pair.ChildByField("value")
}

// isConcatenation reports whether a node is a string concatenation
// (binary + expression).
func isConcatenation(n *secureai.Node) bool {
	if n.Kind() != secureai.KindBinaryOp {
		return false
	}
	op := n.ChildByField("operator")
	return op != nil && op.Text() == "+"
}

// uniqueSorted dedups and sorts identifier names so finding summaries stay
// deterministic.
func uniqueSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// eachFunction visits every function-like node in the unit.
func eachFunction(unit *secureai.SourceUnit, visit func(fn *secureai.Node)) {
	root := unit.Root()
	if root == nil {
		return
	}
	root.Walk(func(n *secureai.Node) bool {
		if n.Kind() == secureai.KindFunctionLike {
			visit(n)
		}
		return true
	})
}

// eachCall visits the call expressions inside a subtree in source order.
// When pruneNested is set, calls inside nested function bodies are skipped
// so each call is attributed to its immediate enclosing scope only.
func eachCall(body *secureai.Node, pruneNested bool, visit func(call *secureai.Node)) {
	if body == nil {
		return
	}
	body.Walk(func(n *secureai.Node) bool {
		if pruneNested && n.Kind() == secureai.KindFunctionLike {
			return false
		}
		if n.Kind() == secureai.KindCall {
			visit(n)
		}
		return true
	})
}
