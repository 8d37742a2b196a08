package analyze

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/proofscout/proofscout/internal/lean"
	"github.com/proofscout/proofscout/internal/logging"
)

// Enriched pairs an obligation with its generated analysis. Analysis is
// empty when the call failed or produced nothing.
type Enriched struct {
	lean.Obligation
	Analysis string
}

// Enrich runs analyzer over every obligation using at most workers
// concurrent calls and returns results in the same order as the input.
// A failed analysis is logged and yields an empty Analysis; it never
// aborts the batch.
func Enrich(ctx context.Context, analyzer Analyzer, obligations []lean.Obligation, referenceContext string, workers int, log *logging.Logger) []Enriched {
	if log == nil {
		log = logging.NopLogger()
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Enriched, len(obligations))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, ob := range obligations {
		g.Go(func() error {
			analysis, err := analyzer.Analyze(ctx, Request{
				Snippet:          ob.Snippet,
				FileContent:      ob.FileContent,
				ImportsContext:   ob.ImportsContext,
				ReferenceContext: referenceContext,
			})
			if err != nil {
				log.Warn("analysis failed", "file", ob.File, "line", ob.Line, "error", err)
				analysis = ""
			}
			results[i] = Enriched{Obligation: ob, Analysis: analysis}
			return nil
		})
	}

	// Workers swallow their errors, so Wait only blocks for completion.
	_ = g.Wait()
	return results
}
