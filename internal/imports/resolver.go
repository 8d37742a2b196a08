// Package imports resolves Lean import statements to files on disk and
// assembles their content into a context block for analysis prompts.
package imports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/proofscout/proofscout/internal/logging"
)

var importRegex = regexp.MustCompile(`^import\s+(\S+)`)

// PackageMap maps the capitalized first segment of an import path to the
// directory of the Lake dependency package providing it.
type PackageMap map[string]string

// LoadPackageMap builds a PackageMap by listing the repository's
// .lake/packages directory. A missing directory yields an empty map.
func LoadPackageMap(repoRoot string) PackageMap {
	pm := PackageMap{}

	packagesDir := filepath.Join(repoRoot, ".lake", "packages")
	entries, err := os.ReadDir(packagesDir)
	if err != nil {
		return pm
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pm[capitalize(entry.Name())] = filepath.Join(packagesDir, entry.Name())
	}
	return pm
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// WebSearchFunc looks up a query externally and returns text to use as
// fallback context for an import that could not be found on disk.
type WebSearchFunc func(ctx context.Context, query string) (string, error)

// Resolver locates the files behind a Lean source file's import
// statements. Imports it cannot resolve are logged and omitted, never
// fatal.
type Resolver struct {
	repoRoot    string
	packages    PackageMap
	maxFileSize int
	webSearch   WebSearchFunc
	log         *logging.Logger
}

// NewResolver returns a Resolver rooted at repoRoot. Imported files at
// or above maxFileSize bytes are excluded from the output. webSearch may
// be nil to disable the external fallback.
func NewResolver(repoRoot string, maxFileSize int, webSearch WebSearchFunc, log *logging.Logger) *Resolver {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Resolver{
		repoRoot:    repoRoot,
		packages:    LoadPackageMap(repoRoot),
		maxFileSize: maxFileSize,
		webSearch:   webSearch,
		log:         log.WithComponent("imports"),
	}
}

// Resolve scans fileContent for import statements and returns the
// concatenated content of every import it can locate, each prefixed with
// a separator naming the import path. Repeated imports are resolved and
// appended once per occurrence.
//
// Search order per import: the Lake dependency package matching the
// first path segment, then the repository root, then the root's src
// directory. When all three miss and a web-search fallback is
// configured, its result is appended instead.
func (r *Resolver) Resolve(ctx context.Context, fileContent string) string {
	var sb strings.Builder

	for _, line := range strings.Split(fileContent, "\n") {
		m := importRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		importPath := m[1]
		segments := strings.Split(importPath, ".")
		relPath := filepath.Join(segments...) + ".lean"

		fullPath := r.locate(segments[0], relPath)
		if fullPath != "" {
			data, err := os.ReadFile(fullPath)
			if err != nil {
				r.log.Warn("could not read import file", "path", fullPath, "error", err)
				continue
			}
			if len(data) >= r.maxFileSize {
				r.log.Warn("skipping large import", "import", importPath, "bytes", len(data))
				continue
			}
			fmt.Fprintf(&sb, "\n---\n-- Content from: %s\n---\n%s", importPath, data)
			continue
		}

		if r.webSearch != nil {
			r.log.Info("searching the web for import", "import", importPath)
			result, err := r.webSearch(ctx, "lean 4 "+importPath)
			if err != nil {
				r.log.Error("web search failed", "import", importPath, "error", err)
				continue
			}
			fmt.Fprintf(&sb, "\n---\n-- Web search result for: %s\n---\n%s", importPath, result)
			continue
		}

		r.log.Warn("could not find imported file", "import", importPath)
	}

	return sb.String()
}

// locate returns the first existing path for relPath in search order, or
// empty when none exists.
func (r *Resolver) locate(firstSegment, relPath string) string {
	if pkgRoot, ok := r.packages[firstSegment]; ok {
		if p := filepath.Join(pkgRoot, relPath); fileExists(p) {
			return p
		}
	}
	if p := filepath.Join(r.repoRoot, relPath); fileExists(p) {
		return p
	}
	if p := filepath.Join(r.repoRoot, "src", relPath); fileExists(p) {
		return p
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
