// Package fetch retrieves reference documents over HTTP for use as
// analysis context.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/proofscout/proofscout/internal/logging"
)

// maxBodySize bounds how much of a reference document is read.
const maxBodySize = 2 << 20

// Fetcher downloads reference URLs and concatenates their contents.
type Fetcher struct {
	client *http.Client
	log    *logging.Logger
}

// NewFetcher returns a Fetcher. client may be nil to use a default with
// a 30 second timeout.
func NewFetcher(client *http.Client, log *logging.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &Fetcher{
		client: client,
		log:    log.WithComponent("fetch"),
	}
}

// Fetch downloads every URL and returns their contents joined, each
// prefixed with a separator naming its source. An empty URL list returns
// empty output without any network call. Individual failures are logged
// and skipped.
func (f *Fetcher) Fetch(ctx context.Context, urls []string) string {
	if len(urls) == 0 {
		return ""
	}

	f.log.Info("fetching reference content", "count", len(urls))

	var sections []string
	for _, url := range urls {
		body, err := f.fetchOne(ctx, url)
		if err != nil {
			f.log.Error("failed to fetch reference URL", "url", url, "error", err)
			continue
		}
		sections = append(sections, fmt.Sprintf("--- Content from %s ---\n%s", url, body))
	}

	return strings.Join(sections, "\n\n")
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
