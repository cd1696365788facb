package finding

import "math"

// Signals are the independent boolean inputs to the confidence score.
type Signals struct {
	DirectUserInput        bool
	StringConcatOrTemplate bool
	RequestObjectSource    bool
	ConfirmedLLMCall       bool
}

// Contribution weights. The score is a ranking heuristic, not a probability.
const (
	weightDirectUserInput  = 0.3
	weightConcatOrTemplate = 0.3
	weightRequestSource    = 0.2
	weightConfirmedLLM     = 0.2
)

// Score maps the signal set to a confidence in [0,1]: additive, capped at 1,
// rounded to two decimal places.
func Score(s Signals) float64 {
	sum := 0.0
	if s.DirectUserInput {
		sum += weightDirectUserInput
	}
	if s.StringConcatOrTemplate {
		sum += weightConcatOrTemplate
	}
	if s.RequestObjectSource {
		sum += weightRequestSource
	}
	if s.ConfirmedLLMCall {
		sum += weightConfirmedLLM
	}
	if sum > 1 {
		sum = 1
	}
	return math.Round(sum*100) / 100
}
