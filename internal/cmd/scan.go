package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/proofscout/proofscout/internal/analyze"
	"github.com/proofscout/proofscout/internal/config"
	"github.com/proofscout/proofscout/internal/fetch"
	"github.com/proofscout/proofscout/internal/github"
	"github.com/proofscout/proofscout/internal/imports"
	"github.com/proofscout/proofscout/internal/lean"
	"github.com/proofscout/proofscout/internal/logging"
	"github.com/proofscout/proofscout/internal/publish"
)

var scanCmd = &cobra.Command{
	Use:   "scan [search-path]",
	Short: "Scan a Lean repository for sorry markers and file issues for them",
	Long: `Scan walks a Lean 4 source tree for declarations left unproven with
sorry. Each finding is enriched with the content of the file's resolved
imports and an AI-generated analysis, then filed as a GitHub issue in
the target repository, unless an open issue with the same title already
exists.

The positional search-path selects a subtree to scan, relative to the
repository root (defaults to the whole repository).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var (
	scanRepoPath      string
	scanDryRun        bool
	scanReferenceURLs []string
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanRepoPath, "repo-path", "", "Path to the root of the target git repository (required)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "List found obligations without calling APIs or creating issues")
	scanCmd.Flags().String("label", "", "GitHub issue label to apply (default \"proof wanted\")")
	scanCmd.Flags().String("model", "", "Gemini model to use for analysis (default \"gemini-2.5-pro\")")
	scanCmd.Flags().StringArrayVar(&scanReferenceURLs, "reference-url", nil, "URL to a webpage used as analysis context (repeatable)")
	scanCmd.Flags().Bool("web-search", false, "Enable web search as a fallback for unresolved imports")
	_ = scanCmd.MarkFlagRequired("repo-path")

	_ = viper.BindPFlag("issues.label", scanCmd.Flags().Lookup("label"))
	_ = viper.BindPFlag("scan.model", scanCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("scan.web_search", scanCmd.Flags().Lookup("web-search"))
}

// scanDeps holds the post-walk collaborators. A dry run leaves the
// function fields nil; executeScan must return before touching them.
type scanDeps struct {
	resolver  lean.ImportResolver
	fetchRefs func(ctx context.Context, urls []string) string
	enrich    func(ctx context.Context, obligations []lean.Obligation, referenceContext string) []analyze.Enriched
	publish   func([]analyze.Enriched) []publish.Result
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	searchPath := "."
	if len(args) > 0 {
		searchPath = args[0]
	}

	gh := github.NewClient(logger)
	if err := gh.CheckInstalled(); err != nil {
		return err
	}

	repoPath, err := filepath.Abs(scanRepoPath)
	if err != nil {
		return fmt.Errorf("invalid repository path: %w", err)
	}
	if info, err := os.Stat(repoPath); err != nil || !info.IsDir() {
		return fmt.Errorf("repository path not found at %q", repoPath)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if !scanDryRun && apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set (required unless --dry-run)")
	}

	// gh resolves the repository from the working directory.
	if err := os.Chdir(repoPath); err != nil {
		return fmt.Errorf("failed to enter repository: %w", err)
	}
	logger.Info("scanning repository", "repo_path", repoPath, "search_path", searchPath, "dry_run", scanDryRun)

	repoName, err := gh.RepoName()
	if err != nil {
		return fmt.Errorf("failed to detect repository: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Detected repository: %s\n", repoName)

	ctx := cmd.Context()

	var analyzer *analyze.GeminiAnalyzer
	if !scanDryRun {
		analyzer, err = analyze.NewGeminiAnalyzer(ctx, apiKey, cfg.Scan.Model, logger)
		if err != nil {
			return err
		}
	}

	var webSearch imports.WebSearchFunc
	if cfg.Scan.WebSearch && analyzer != nil {
		webSearch = analyzer.WebSearch
	}

	deps := scanDeps{
		resolver: imports.NewResolver(repoPath, cfg.Scan.MaxImportFileSize, webSearch, logger),
	}
	if !scanDryRun {
		fetcher := fetch.NewFetcher(nil, logger)
		publisher := publish.NewPublisher(gh, repoName, cfg.Issues.Label, cfg.Issues.Branch, logger)
		deps.fetchRefs = fetcher.Fetch
		deps.enrich = func(ctx context.Context, obligations []lean.Obligation, referenceContext string) []analyze.Enriched {
			return analyze.Enrich(ctx, analyzer, obligations, referenceContext, cfg.Scan.EffectiveWorkers(), logger)
		}
		deps.publish = publisher.Publish
	}

	return executeScan(ctx, cmd.OutOrStdout(), searchPath, scanDryRun, scanReferenceURLs, cfg.Scan.Model, logger, deps)
}

// executeScan is the flow after setup succeeds: walk, then either print
// the dry-run listing or fetch references, enrich, and publish.
func executeScan(ctx context.Context, out io.Writer, searchPath string, dryRun bool, referenceURLs []string, model string, logger *logging.Logger, deps scanDeps) error {
	fmt.Fprintf(out, "Scanning for sorry markers in %q...\n", searchPath)
	walker := lean.NewWalker(deps.resolver, logger)
	obligations, err := walker.Walk(ctx, searchPath)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(obligations) == 0 {
		fmt.Fprintln(out, "No sorry markers found.")
		return nil
	}

	if dryRun {
		fmt.Fprintf(out, "Dry run: would process %d obligation(s):\n", len(obligations))
		for _, ob := range obligations {
			name := ob.DeclName
			if name == "" {
				name = "task"
			}
			fmt.Fprintf(out, "  - %s:%d (%s)\n", ob.File, ob.Line, name)
		}
		return nil
	}

	referenceContext := ""
	if len(referenceURLs) > 0 {
		fmt.Fprintf(out, "Fetching %d reference URL(s)...\n", len(referenceURLs))
		referenceContext = deps.fetchRefs(ctx, referenceURLs)
	}

	fmt.Fprintf(out, "Analyzing %d obligation(s) with %s...\n", len(obligations), model)
	enriched := deps.enrich(ctx, obligations, referenceContext)
	results := deps.publish(enriched)

	created, skipped, failed := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case publish.StatusCreated:
			created++
			fmt.Fprintf(out, "Created issue: %s\n", r.Title)
		case publish.StatusSkippedDuplicate, publish.StatusSkippedExisting:
			skipped++
			fmt.Fprintf(out, "Skipped (already exists): %s\n", r.Title)
		case publish.StatusFailed:
			failed++
			fmt.Fprintf(out, "Failed to create issue %q: %v\n", r.Title, r.Err)
		}
	}

	fmt.Fprintf(out, "Done: %d created, %d skipped, %d failed.\n", created, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d issue(s) could not be created", failed)
	}
	return nil
}
