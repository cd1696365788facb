package report

import (
	"encoding/json"
	"io"

	secureai "github.com/secureai/secureai"
)

func writeJSON(w io.Writer, res *secureai.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
