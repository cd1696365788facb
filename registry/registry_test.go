package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(nil)
	c.SetBaseURL(srv.URL)
	return c
}

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestExistsReports404AsMissing(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	if c.Exists(context.Background(), "openai") {
		t.Fatalf("404 should report missing")
	}
}

func TestExistsFailsOpenOnServerError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	if !c.Exists(context.Background(), "openai") {
		t.Fatalf("server errors must fail open")
	}
}

func TestExistsFailsOpenWhenUnreachable(t *testing.T) {
	t.Parallel()

	c := NewClient(nil)
	c.SetBaseURL("http://127.0.0.1:1")
	if !c.Exists(context.Background(), "openai") {
		t.Fatalf("connection failures must fail open")
	}
}

func TestCheckDependenciesFlagsTyposquats(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	manifest := writeManifest(t, `{
  "dependencies": {
    "openaii": "^1.0.0",
    "express": "^4.0.0"
  }
}`)

	issues, err := c.CheckDependencies(context.Background(), manifest)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", issues)
	}
	if issues[0].Kind != "typosquat" || issues[0].Similar != "openai" || issues[0].Distance != 1 {
		t.Fatalf("unexpected issue: %+v", issues[0])
	}
}

func TestCheckDependenciesFlagsMissingKnownSDK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	manifest := writeManifest(t, `{"dependencies": {"openai": "^4.0.0"}}`)

	issues, err := c.CheckDependencies(context.Background(), manifest)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) != 1 || issues[0].Kind != "missing" || issues[0].Dependency != "openai" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestCheckDependenciesCleanManifest(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	manifest := writeManifest(t, `{
  "dependencies": {"openai": "^4.0.0", "express": "^4.0.0"},
  "devDependencies": {"typescript": "^5.0.0"}
}`)

	issues, err := c.CheckDependencies(context.Background(), manifest)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestCheckDependenciesRejectsBadManifest(t *testing.T) {
	t.Parallel()

	c := NewClient(nil)
	manifest := writeManifest(t, `not json`)
	if _, err := c.CheckDependencies(context.Background(), manifest); err == nil {
		t.Fatalf("expected error for malformed package.json")
	}
}
