package rules

import (
	"regexp"
	"strings"

	zxcvbn "github.com/ccojocar/zxcvbn-go"

	secureai "github.com/secureai/secureai"
	"github.com/secureai/secureai/finding"
)

// keyPrefixes are provider-specific API key shapes.
var keyPrefixes = []string{"sk-ant-", "sk-", "AIza"}

// defaultKeyNamePattern matches key-like identifier names for the
// assignment-based check. Overridable per rule config ("pattern").
const defaultKeyNamePattern = `(?i)\b(api[_-]?key|secret|token)\b`

// Entropy gate: literals below this zxcvbn entropy are treated as
// placeholders, not credentials.
const defaultEntropyThreshold = 80.0

const minKeyLength = 20

type hardcodedKey struct {
	secureai.MetaData
	namePattern      *regexp.Regexp
	entropyThreshold float64
}

// Evaluate flags string literals that look like live LLM provider API keys:
// provider-prefixed values, or high-entropy values assigned to key-named
// variables.
func (r *hardcodedKey) Evaluate(unit *secureai.SourceUnit) []finding.Finding {
	root := unit.Root()
	if root == nil {
		return nil
	}
	var out []finding.Finding
	seenLines := map[int]struct{}{}

	root.Walk(func(n *secureai.Node) bool {
		switch n.Kind() {
		case secureai.KindStringLiteral:
			value := literalValue(n)
			if !r.looksLikeProviderKey(value) {
				return true
			}
			if _, dup := seenLines[n.Line()]; dup {
				return true
			}
			seenLines[n.Line()] = struct{}{}
			out = append(out, r.newKeyFinding(unit, n.Line(), 0.9))
		case secureai.KindVariableDecl:
			name := n.ChildByField("name")
			value := n.ChildByField("value")
			if name == nil || value == nil || value.Kind() != secureai.KindStringLiteral {
				return true
			}
			if !r.namePattern.MatchString(name.Text()) {
				return true
			}
			literal := literalValue(value)
			if len(literal) < 16 || !r.highEntropy(literal) {
				return true
			}
			if _, dup := seenLines[n.Line()]; dup {
				return true
			}
			seenLines[n.Line()] = struct{}{}
			out = append(out, r.newKeyFinding(unit, n.Line(), 0.7))
		}
		return true
	})
	return out
}

func (r *hardcodedKey) newKeyFinding(unit *secureai.SourceUnit, line int, confidence float64) finding.Finding {
	f := r.NewFinding(unit, line,
		"Hardcoded LLM provider API key",
		"An API credential embedded in source ships with every copy of the code and cannot "+
			"be rotated without a release.",
		"Move the key to environment configuration or a secret manager and rotate it now; "+
			"assume it is already compromised.",
		finding.Signals{})
	f.Confidence = confidence
	return f
}

func (r *hardcodedKey) looksLikeProviderKey(value string) bool {
	if len(value) < minKeyLength {
		return false
	}
	for _, prefix := range keyPrefixes {
		if strings.HasPrefix(value, prefix) {
			return r.highEntropy(value)
		}
	}
	return false
}

func (r *hardcodedKey) highEntropy(value string) bool {
	return zxcvbn.PasswordStrength(value, nil).Entropy >= r.entropyThreshold
}

// literalValue strips the quotes from a string literal node.
func literalValue(n *secureai.Node) string {
	return strings.Trim(n.Text(), "\"'`")
}

// NewHardcodedKey builds the hardcoded-API-key rule. The name pattern can
// be overridden via the rule's "pattern" config option.
func NewHardcodedKey(id string, conf secureai.Config) secureai.Rule {
	pattern := defaultKeyNamePattern
	if v, ok := conf.RuleOption(id, "pattern"); ok {
		if s, ok := v.(string); ok && s != "" {
			pattern = s
		}
	}
	return &hardcodedKey{
		MetaData: secureai.MetaData{
			RuleID:    id,
			RuleTitle: "Hardcoded LLM provider API key",
			Sev:       finding.Critical,
		},
		namePattern:      regexp.MustCompile(pattern),
		entropyThreshold: defaultEntropyThreshold,
	}
}
