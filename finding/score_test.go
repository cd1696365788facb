package finding

import "testing"

func TestScoreAddsSignalWeights(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		sig  Signals
		want float64
	}{
		{"none", Signals{}, 0},
		{"direct input only", Signals{DirectUserInput: true}, 0.3},
		{"concat only", Signals{StringConcatOrTemplate: true}, 0.3},
		{"request source only", Signals{RequestObjectSource: true}, 0.2},
		{"confirmed call only", Signals{ConfirmedLLMCall: true}, 0.2},
		{
			"typical injection",
			Signals{DirectUserInput: true, StringConcatOrTemplate: true, ConfirmedLLMCall: true},
			0.8,
		},
		{
			"all signals cap at one",
			Signals{DirectUserInput: true, StringConcatOrTemplate: true, RequestObjectSource: true, ConfirmedLLMCall: true},
			1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tc.sig); got != tc.want {
				t.Fatalf("Score() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreIsRoundedToTwoDecimals(t *testing.T) {
	t.Parallel()

	got := Score(Signals{DirectUserInput: true, RequestObjectSource: true})
	if got != 0.5 {
		t.Fatalf("Score() = %v, want exactly 0.5", got)
	}
}
