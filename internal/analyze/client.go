// Package analyze generates guidance for proof obligations using the
// Gemini API, fanning requests out across a bounded worker pool.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/proofscout/proofscout/internal/logging"
)

// Request carries the context for one analysis call.
type Request struct {
	Snippet          string
	FileContent      string
	ImportsContext   string
	ReferenceContext string
}

// Analyzer produces a markdown analysis for a proof obligation.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (string, error)
}

// GeminiAnalyzer is an Analyzer backed by the official genai client.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
	log    *logging.Logger
}

// NewGeminiAnalyzer creates a GeminiAnalyzer for the given model.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string, log *logging.Logger) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if log == nil {
		log = logging.NopLogger()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiAnalyzer{
		client: client,
		model:  model,
		log:    log.WithComponent("analyze"),
	}, nil
}

// Analyze sends one obligation to the model and returns its markdown
// analysis with surrounding whitespace trimmed.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, req Request) (string, error) {
	a.log.Debug("calling gemini", "model", a.model, "snippet_bytes", len(req.Snippet))

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: buildPrompt(req)}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}

// WebSearch answers a lookup query with Google Search grounding enabled.
// It serves as the import resolver's external fallback.
func (a *GeminiAnalyzer) WebSearch(ctx context.Context, query string) (string, error) {
	a.log.Debug("web search", "query", query)

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: "Summarize the definition and purpose of: " + query}}}},
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	)
	if err != nil {
		return "", fmt.Errorf("web search failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("web search returned no content")
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
