// Package report renders scan results for humans and machines. All
// renderers consume the engine's Result read-only.
package report

import (
	"fmt"
	"io"

	secureai "github.com/secureai/secureai"
)

// Supported output formats.
const (
	FormatJSON     = "json"
	FormatSARIF    = "sarif"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Write renders res to w in the requested format.
func Write(w io.Writer, format string, res *secureai.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatSARIF:
		return writeSARIF(w, res)
	case FormatMarkdown:
		return writeMarkdown(w, res)
	case FormatText, "":
		return writeText(w, res)
	}
	return fmt.Errorf("unknown report format %q", format)
}
