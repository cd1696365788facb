package secureai

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return root
}

func unitPaths(units []*SourceUnit) []string {
	paths := make([]string, 0, len(units))
	for _, u := range units {
		paths = append(paths, filepath.ToSlash(u.Path))
	}
	return paths
}

func TestLoaderCollectsSupportedSources(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/app.js":      `const a = 1;`,
		"src/handler.ts":  `const b: number = 2;`,
		"src/view.tsx":    `const c = 3;`,
		"readme.md":       `# docs`,
		"src/styles.css":  `body {}`,
		"scripts/run.jsx": `const d = 4;`,
	})

	units, err := NewLoader(nil).Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(units) != 4 {
		t.Fatalf("expected 4 source units, got %d: %v", len(units), unitPaths(units))
	}
	for i := 1; i < len(units); i++ {
		if units[i-1].Path >= units[i].Path {
			t.Fatalf("units not sorted by path: %v", unitPaths(units))
		}
	}
}

func TestLoaderSkipsGeneratedDirectories(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/app.js":                 `const a = 1;`,
		"node_modules/dep/index.js":  `const x = 1;`,
		"dist/app.js":                `const y = 1;`,
		"build/out.js":               `const z = 1;`,
		"coverage/lcov-report/x.js":  `const w = 1;`,
		".next/static/chunks/app.js": `const v = 1;`,
	})

	units, err := NewLoader(nil).Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(units) != 1 || filepath.ToSlash(units[0].Path) != "src/app.js" {
		t.Fatalf("generated directories should be skipped, got %v", unitPaths(units))
	}
}

func TestLoaderAppliesExcludeGlobs(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/app.js":          `const a = 1;`,
		"src/app.test.js":     `const b = 1;`,
		"src/deep/old.js":     `const c = 1;`,
		"src/deep/current.ts": `const d = 1;`,
	})

	loader := NewLoader(nil, WithExcludes("**/*.test.js", "**/old.js"))
	units, err := loader.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("excludes not applied, got %v", unitPaths(units))
	}
}

func TestLoaderIncludeGlobsRestrictCorpus(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/app.js":     `const a = 1;`,
		"src/api/llm.ts": `const b = 1;`,
		"tools/gen.js":   `const c = 1;`,
	})

	loader := NewLoader(nil, WithIncludes("src/**"), WithExcludes("**/gen.js"))
	units, err := loader.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("include globs not applied, got %v", unitPaths(units))
	}
}

func TestLoaderSkipsOversizedFiles(t *testing.T) {
	t.Parallel()

	big := make([]byte, 64)
	for i := range big {
		big[i] = 'a'
	}
	root := writeTree(t, map[string]string{
		"src/small.js": `const a = 1;`,
		"src/big.js":   `const blob = "` + string(big) + `";`,
	})

	loader := NewLoader(nil, WithMaxFileSize(32))
	units, err := loader.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(units) != 1 || filepath.ToSlash(units[0].Path) != "src/small.js" {
		t.Fatalf("oversized file should be skipped, got %v", unitPaths(units))
	}
}
