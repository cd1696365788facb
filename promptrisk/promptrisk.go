// Package promptrisk scores free text for prompt-injection risk phrases.
// It is a standalone keyword scorer: its output annotates reports and never
// feeds the rule engine's confidence scoring.
package promptrisk

import (
	"math"
	"sort"
	"strings"
)

// riskVocabulary maps risk phrases to weights. Weights are heuristic; the
// score ranks prompts for review, nothing more.
var riskVocabulary = map[string]float64{
	"ignore previous instructions": 0.4,
	"ignore all instructions":      0.4,
	"disregard the above":          0.35,
	"system prompt":                0.3,
	"jailbreak":                    0.3,
	"you are now":                  0.2,
	"act as":                       0.15,
	"developer mode":               0.25,
	"do anything now":              0.3,
	"reveal your instructions":     0.35,
}

// Assessment is the result of scoring one text.
type Assessment struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched,omitempty"`
}

// Assess scores text in [0,1] by summing the weights of matched phrases,
// capped at 1 and rounded to two decimals.
func Assess(text string) Assessment {
	lc := strings.ToLower(text)
	sum := 0.0
	var matched []string
	for phrase, weight := range riskVocabulary {
		if strings.Contains(lc, phrase) {
			sum += weight
			matched = append(matched, phrase)
		}
	}
	if sum > 1 {
		sum = 1
	}
	sort.Strings(matched)
	return Assessment{
		Score:   math.Round(sum*100) / 100,
		Matched: matched,
	}
}

// Score is the score-only convenience form of Assess.
func Score(text string) float64 {
	return Assess(text).Score
}
