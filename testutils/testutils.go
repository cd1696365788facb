// Package testutils holds the JavaScript and TypeScript sample grids used
// by the rule tests.
package testutils

import (
	"context"
	"fmt"

	secureai "github.com/secureai/secureai"
)

// CodeSample is one source snippet together with the number of findings a
// rule is expected to raise on it.
type CodeSample struct {
	Code     string
	Findings int
	Config   secureai.Config
}

// Parse parses a sample as a single-file corpus. The extension decides the
// grammar.
func Parse(path, code string) (*secureai.SourceUnit, error) {
	unit, err := secureai.ParseSource(context.Background(), path, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("parsing sample %s: %w", path, err)
	}
	return unit, nil
}
