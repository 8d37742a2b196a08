package lean

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/proofscout/proofscout/internal/logging"
)

// ImportResolver produces the imported-file context for a Lean source
// file's content. Implementations log and skip imports they cannot
// resolve rather than failing.
type ImportResolver interface {
	Resolve(ctx context.Context, fileContent string) string
}

// Walker scans a directory tree for proof obligations.
type Walker struct {
	resolver ImportResolver
	log      *logging.Logger
}

// NewWalker returns a Walker. resolver may be nil, in which case
// obligations carry no import context.
func NewWalker(resolver ImportResolver, log *logging.Logger) *Walker {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Walker{
		resolver: resolver,
		log:      log.WithComponent("walker"),
	}
}

// Walk traverses searchPath and returns every obligation found in .lean
// files, in directory-walk order. Lake build artifacts (.lake and build
// directories) are pruned. Unreadable files are logged and skipped.
// Imports are resolved once per file and the result is shared by all of
// that file's obligations.
func (w *Walker) Walk(ctx context.Context, searchPath string) ([]Obligation, error) {
	var found []Obligation

	err := filepath.WalkDir(searchPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != searchPath && (d.Name() == ".lake" || d.Name() == "build") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".lean") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			w.log.Warn("could not read file", "path", path, "error", err)
			return nil
		}
		content := string(data)

		obligations := Scan(path, content)
		if len(obligations) == 0 {
			return nil
		}
		w.log.Debug("found proof obligations", "path", path, "count", len(obligations))

		if w.resolver != nil {
			importsCtx := w.resolver.Resolve(ctx, content)
			for i := range obligations {
				obligations[i].ImportsContext = importsCtx
			}
		}

		found = append(found, obligations...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
