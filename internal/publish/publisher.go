// Package publish files one GitHub issue per proof obligation,
// deduplicated against the batch and against open issues.
package publish

import (
	"fmt"

	"github.com/proofscout/proofscout/internal/analyze"
	"github.com/proofscout/proofscout/internal/lean"
	"github.com/proofscout/proofscout/internal/logging"
)

// RecordStore is the issue backend the publisher writes to.
type RecordStore interface {
	SearchOpenIssues(repo, title string) (string, error)
	CreateIssue(title, body, label string) error
}

// Status describes the outcome for one obligation.
type Status int

const (
	// StatusCreated means a new issue was filed.
	StatusCreated Status = iota
	// StatusSkippedDuplicate means another obligation in the same batch
	// produced the same title.
	StatusSkippedDuplicate
	// StatusSkippedExisting means an open issue with this title already
	// exists in the repository.
	StatusSkippedExisting
	// StatusFailed means the create call failed.
	StatusFailed
)

// Result reports the outcome of publishing one obligation.
type Result struct {
	Title  string
	Status Status
	Err    error
}

// Publisher files issues for enriched obligations.
type Publisher struct {
	store  RecordStore
	repo   string
	label  string
	branch string
	log    *logging.Logger
}

// NewPublisher returns a Publisher for the repository named owner/name.
// branch is used for deep links into source files.
func NewPublisher(store RecordStore, repo, label, branch string, log *logging.Logger) *Publisher {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Publisher{
		store:  store,
		repo:   repo,
		label:  label,
		branch: branch,
		log:    log.WithComponent("publish"),
	}
}

// Title composes the issue title for an obligation. An obligation with
// no recognized declaration name falls back to a line-based title.
func Title(ob lean.Obligation) string {
	if ob.DeclName == "" {
		return fmt.Sprintf("Proof obligation in `%s` near line %d", ob.File, ob.Line)
	}
	return fmt.Sprintf("Proof obligation for `%s` in `%s`", ob.DeclName, ob.File)
}

// Body composes the issue body: the file reference, the optional
// analysis section, the goal line, a deep link to the marker, and the
// code snippet.
func (p *Publisher) Body(ob lean.Obligation, analysis string) string {
	analysisSection := ""
	if analysis != "" {
		analysisSection = fmt.Sprintf("\n\n**🤖 AI Analysis:**\n%s", analysis)
	}

	return fmt.Sprintf(
		"A proof in `%s` contains a `sorry`.%s\n\n"+
			"**Goal:** Replace the `sorry` with a complete proof.\n\n"+
			"[Link to the sorry on GitHub](https://github.com/%s/blob/%s/%s#L%d)\n\n"+
			"**Code Snippet:**\n```lean\n%s\n```",
		ob.File, analysisSection, p.repo, p.branch, ob.File, ob.Line, ob.Snippet)
}

// Publish files one issue per enriched obligation, serially and in input
// order. Titles repeated within the batch are filed once. An obligation
// whose title matches an existing open issue is skipped. A failed
// duplicate check is logged and the create proceeds anyway. Failures are
// reported per record and never abort the batch.
func (p *Publisher) Publish(results []analyze.Enriched) []Result {
	out := make([]Result, 0, len(results))
	seen := make(map[string]bool, len(results))

	for _, r := range results {
		title := Title(r.Obligation)

		if seen[title] {
			p.log.Info("skipping duplicate title within batch", "title", title)
			out = append(out, Result{Title: title, Status: StatusSkippedDuplicate})
			continue
		}
		seen[title] = true

		existing, err := p.store.SearchOpenIssues(p.repo, title)
		if err != nil {
			p.log.Warn("duplicate check failed, creating anyway", "title", title, "error", err)
		} else if existing != "" {
			p.log.Info("issue already exists", "title", title)
			out = append(out, Result{Title: title, Status: StatusSkippedExisting})
			continue
		}

		if err := p.store.CreateIssue(title, p.Body(r.Obligation, r.Analysis), p.label); err != nil {
			p.log.Error("failed to create issue", "title", title, "error", err)
			out = append(out, Result{Title: title, Status: StatusFailed, Err: err})
			continue
		}

		p.log.Info("created issue", "title", title)
		out = append(out, Result{Title: title, Status: StatusCreated})
	}

	return out
}
