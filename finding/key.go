package finding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// strippedExtensions are removed during path normalization so a compiled
// twin of a source file (dist/x.js vs src/x.ts) collapses to one identity.
var strippedExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// NormalizePath lowercases a root-relative path, canonicalizes separators
// to forward slashes, and strips a known source extension.
func NormalizePath(path string) string {
	p := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	for _, ext := range strippedExtensions {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

// Key is the canonical identity of a finding across rules, files, and runs.
type Key struct {
	RuleID  string
	File    string
	Line    int
	Summary string
}

// KeyOf builds the canonical key for a finding.
func KeyOf(f Finding) Key {
	return Key{
		RuleID:  f.RuleID,
		File:    NormalizePath(f.File),
		Line:    f.Line,
		Summary: f.Summary,
	}
}

// String renders the key in a stable pipe-delimited form.
func (k Key) String() string {
	return k.RuleID + "|" + k.File + "|" + strconv.Itoa(k.Line) + "|" + k.Summary
}

// Hash returns a 64-bit fingerprint of the key, used for baseline
// integrity fingerprints.
func (k Key) Hash() uint64 {
	return xxhash.Sum64String(k.String())
}

// HashHex is the hex form of Hash.
func (k Key) HashHex() string {
	return fmt.Sprintf("%016x", k.Hash())
}
