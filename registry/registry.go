// Package registry checks a project's AI SDK dependencies against the npm
// registry: existence lookups and typosquat detection against the known SDK
// name set.
//
// Both checks fail open: a network or server error counts as "exists" so an
// offline environment never blocks a scan. Only a definitive 404 reports a
// missing package.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// typosquatDistance is the maximum edit distance treated as a near miss.
const typosquatDistance = 2

// knownSDKs are the AI SDK package names used for typosquat comparison.
var knownSDKs = []string{
	"openai",
	"@anthropic-ai/sdk",
	"@google/generative-ai",
	"@google/genai",
	"langchain",
	"@langchain/core",
	"ai",
}

// Issue is one dependency problem: a package missing from the registry or a
// near-miss of a known SDK name.
type Issue struct {
	Dependency string `json:"dependency"`
	Kind       string `json:"kind"` // "missing" or "typosquat"
	Similar    string `json:"similar,omitempty"`
	Distance   int    `json:"distance,omitempty"`
}

// Client queries the npm registry.
type Client struct {
	http *resty.Client
	log  hclog.Logger
}

// NewClient builds a registry client. A nil logger is discarded.
func NewClient(log hclog.Logger) *Client {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(5*time.Second).
			SetHeader("Accept", "application/json"),
		log: log.Named("registry"),
	}
}

// SetBaseURL overrides the registry endpoint, used by tests.
func (c *Client) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

// Exists reports whether a package is published. Fail-open: any error other
// than a definitive 404 is treated as existing.
func (c *Client) Exists(ctx context.Context, name string) bool {
	resp, err := c.http.R().SetContext(ctx).Head("/" + name)
	if err != nil {
		c.log.Debug("registry lookup failed open", "package", name, "error", err)
		return true
	}
	return resp.StatusCode() != http.StatusNotFound
}

// CheckDependencies inspects the package.json at path and returns issues
// for AI-SDK-looking dependencies: names a small edit distance from a known
// SDK (possible typosquats) and names absent from the registry.
func (c *Client) CheckDependencies(ctx context.Context, path string) ([]Issue, error) {
	deps, err := readDependencies(path)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, dep := range deps {
		if similar, distance, squatted := nearestSDK(dep); squatted {
			issues = append(issues, Issue{
				Dependency: dep,
				Kind:       "typosquat",
				Similar:    similar,
				Distance:   distance,
			})
			continue
		}
		if isKnownSDK(dep) && !c.Exists(ctx, dep) {
			issues = append(issues, Issue{Dependency: dep, Kind: "missing"})
		}
	}
	return issues, nil
}

// readDependencies lists the dependency names of a package.json, sorted.
func readDependencies(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading package.json: %w", err)
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	var deps []string
	for name := range manifest.Dependencies {
		deps = append(deps, name)
	}
	for name := range manifest.DevDependencies {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps, nil
}

// nearestSDK reports the closest known SDK name within the typosquat
// distance, excluding exact matches.
func nearestSDK(dep string) (string, int, bool) {
	for _, sdk := range knownSDKs {
		if dep == sdk {
			return "", 0, false
		}
		d := levenshtein.ComputeDistance(dep, sdk)
		if d > 0 && d <= typosquatDistance {
			return sdk, d, true
		}
	}
	return "", 0, false
}

func isKnownSDK(dep string) bool {
	for _, sdk := range knownSDKs {
		if dep == sdk {
			return true
		}
	}
	return false
}
