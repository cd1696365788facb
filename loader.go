// (c) Copyright secureai's authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secureai

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxFileSize caps individual file parsing at 2 MiB. Larger files are
// skipped the same way unparseable files are.
const DefaultMaxFileSize = 2 << 20

// skipDirs are dependency and build trees never scanned.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
	"build":        {},
	".git":         {},
	"coverage":     {},
	".next":        {},
}

// sourceExtensions is the known source-extension set supplied to rules.
var sourceExtensions = map[string]struct{}{
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".mjs": {}, ".cjs": {},
}

// Loader walks a source root and produces the syntax corpus. Files that
// cannot be read or parsed are absent from the corpus, never surfaced as
// errors.
type Loader struct {
	log         hclog.Logger
	includes    []string
	excludes    []string
	maxFileSize int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithIncludes restricts the corpus to files matching at least one of the
// doublestar glob patterns. No patterns means everything is included.
func WithIncludes(globs ...string) LoaderOption {
	return func(l *Loader) { l.includes = append(l.includes, globs...) }
}

// WithExcludes adds doublestar glob patterns matched against root-relative
// paths; matching files are skipped. Excludes win over includes.
func WithExcludes(globs ...string) LoaderOption {
	return func(l *Loader) { l.excludes = append(l.excludes, globs...) }
}

// WithMaxFileSize overrides the per-file size cap.
func WithMaxFileSize(n int64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxFileSize = n
		}
	}
}

// NewLoader builds a Loader. A nil logger falls back to a null logger.
func NewLoader(log hclog.Logger, opts ...LoaderOption) *Loader {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	l := &Loader{log: log.Named("loader"), maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load walks root, parses every matching source file concurrently, and
// returns the corpus ordered by path. Only the walk itself can fail; bad
// individual files are logged and dropped.
func (l *Loader) Load(ctx context.Context, root string) ([]*SourceUnit, error) {
	paths, err := l.collect(root)
	if err != nil {
		return nil, err
	}

	units := make([]*SourceUnit, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, rel := range paths {
		g.Go(func() error {
			full := filepath.Join(root, filepath.FromSlash(rel))
			src, err := os.ReadFile(full)
			if err != nil {
				l.log.Debug("skipping unreadable file", "path", rel, "error", err)
				return nil
			}
			unit, err := ParseSource(gctx, rel, src)
			if err != nil {
				l.log.Debug("skipping unparseable file", "path", rel, "error", err)
				return nil
			}
			units[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := units[:0]
	for _, u := range units {
		if u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

// collect gathers root-relative candidate paths in sorted order.
func (l *Loader) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are tolerated like unreadable files.
			l.log.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		if info, err := d.Info(); err == nil && info.Size() > l.maxFileSize {
			l.log.Debug("skipping oversized file", "path", path, "size", info.Size())
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if len(l.includes) > 0 && !matchesAny(l.includes, rel) {
			return nil
		}
		if matchesAny(l.excludes, rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func matchesAny(globs []string, rel string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}
