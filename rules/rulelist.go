package rules

import (
	secureai "github.com/secureai/secureai"
)

// RuleDefinition binds a rule ID to its description and constructor.
type RuleDefinition struct {
	ID          string
	Description string
	Create      func(id string, conf secureai.Config) secureai.Rule
}

// defaultRuleDefinitions is the built-in detector set. AI-prefixed rules
// count toward risk; the LLM-prefixed inventory rule does not.
var defaultRuleDefinitions = []RuleDefinition{
	{"AI001", "User input concatenated into LLM prompt", NewPromptInjection},
	{"AI002", "Sensitive prompt or credential data logged", NewSensitiveLogging},
	{"AI003", "LLM invoked before authentication", NewAuthOrder},
	{"AI004", "Bulk sensitive object transmitted to LLM", NewSensitiveObject},
	{"AI005", "Hardcoded LLM provider API key", NewHardcodedKey},
	{"LLM001", "LLM SDK usage inventory", NewSDKInventory},
}

// Definitions returns the built-in rule definitions.
func Definitions() []RuleDefinition {
	out := make([]RuleDefinition, len(defaultRuleDefinitions))
	copy(out, defaultRuleDefinitions)
	return out
}

// RuleFilter decides whether a rule ID participates in a scan.
type RuleFilter func(id string) bool

// NewRuleFilter builds a filter that returns action for the listed IDs and
// !action for everything else.
func NewRuleFilter(action bool, ruleIDs ...string) RuleFilter {
	listed := make(map[string]struct{}, len(ruleIDs))
	for _, id := range ruleIDs {
		listed[id] = struct{}{}
	}
	return func(id string) bool {
		if _, ok := listed[id]; ok {
			return action
		}
		return !action
	}
}

// Generate instantiates the built-in rules that pass every filter.
func Generate(conf secureai.Config, filters ...RuleFilter) []secureai.Rule {
	if conf == nil {
		conf = secureai.NewConfig()
	}
	var out []secureai.Rule
	for _, def := range defaultRuleDefinitions {
		excluded := false
		for _, filter := range filters {
			if !filter(def.ID) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, def.Create(def.ID, conf))
	}
	return out
}
