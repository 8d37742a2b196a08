// Package github wraps the GitHub CLI (`gh`) for repository detection
// and issue operations.
package github

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/proofscout/proofscout/internal/logging"
)

// CommandExecutor is a function type that executes a command and returns
// its combined output. It allows for dependency injection in tests.
type CommandExecutor func(name string, args ...string) ([]byte, error)

// defaultExecutor runs commands using os/exec.
var defaultExecutor CommandExecutor = func(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// ErrGHNotInstalled indicates that the gh CLI tool is not installed or not in PATH.
var ErrGHNotInstalled = errors.New("gh CLI is not installed or not in PATH (install it from https://cli.github.com/)")

// ErrGHAuthRequired indicates that gh CLI requires authentication.
var ErrGHAuthRequired = errors.New("gh CLI requires authentication (run 'gh auth login')")

// Client issues gh CLI commands in a working directory.
type Client struct {
	executor CommandExecutor
	log      *logging.Logger
}

// NewClient creates a Client using the real gh binary.
func NewClient(log *logging.Logger) *Client {
	return NewClientWithExecutor(defaultExecutor, log)
}

// NewClientWithExecutor creates a Client with an injected executor.
func NewClientWithExecutor(executor CommandExecutor, log *logging.Logger) *Client {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Client{
		executor: executor,
		log:      log.WithComponent("github"),
	}
}

// CheckInstalled verifies the gh binary is reachable. It returns
// ErrGHNotInstalled when the binary cannot be found.
func (c *Client) CheckInstalled() error {
	if _, err := c.executor("gh", "--version"); err != nil {
		return classifyGHError(err, nil)
	}
	return nil
}

// RepoName returns the owner/name of the repository in the current
// working directory, as reported by gh.
func (c *Client) RepoName() (string, error) {
	output, err := c.executor("gh", "repo", "view", "--json", "nameWithOwner", "--jq", ".nameWithOwner")
	if err != nil {
		return "", classifyGHError(err, output)
	}

	name := strings.TrimSpace(string(output))
	if name == "" {
		return "", fmt.Errorf("gh returned an empty repository name")
	}
	return name, nil
}

// SearchOpenIssues searches open issues whose title contains title and
// returns the raw (possibly empty) listing. A missing-result exit from
// gh is treated as no matches, not an error.
func (c *Client) SearchOpenIssues(repo, title string) (string, error) {
	query := fmt.Sprintf("%q in:title repo:%s is:open", title, repo)
	output, err := c.executor("gh", "issue", "list", "--search", query)
	if err != nil {
		if strings.Contains(strings.ToLower(string(output)), "no issues found") {
			return "", nil
		}
		return "", classifyGHError(err, output)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateIssue creates a labeled issue in the current repository.
func (c *Client) CreateIssue(title, body, label string) error {
	c.log.Debug("creating issue", "title", title, "label", label)

	output, err := c.executor("gh", "issue", "create",
		"--title", title,
		"--body", body,
		"--label", label,
	)
	if err != nil {
		return classifyGHError(err, output)
	}
	return nil
}

// classifyGHError analyzes the error and output from a gh command and
// returns a more specific error type when possible.
func classifyGHError(err error, output []byte) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return ErrGHNotInstalled
	}

	outStr := strings.ToLower(string(output))
	if strings.Contains(outStr, "not logged in") ||
		strings.Contains(outStr, "authentication required") ||
		strings.Contains(outStr, "gh auth login") {
		return ErrGHAuthRequired
	}

	return fmt.Errorf("gh command failed: %w\n%s", err, string(output))
}
