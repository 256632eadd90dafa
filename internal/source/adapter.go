// Package source holds one adapter per external news provider. Every
// adapter maps its provider's response shape into the common Article
// record and degrades to an empty result on any failure.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

// Adapter is the integration point for one news-search provider or feed.
type Adapter interface {
	// Name returns the provider tag (e.g., "newsapi", "rss").
	Name() string

	// Credibility returns the provider's manually assigned trust
	// constant on a 0-10 scale.
	Credibility() float64

	// Search returns articles matching the query, or an empty list.
	// A returned error is informational: callers log it and treat the
	// adapter's contribution as empty, never failing the request.
	Search(ctx context.Context, query string) ([]model.Article, error)
}

// getJSON issues a single GET with query params and decodes the JSON
// body into out. Non-2xx responses are reported via the status code so
// adapters can decide between quota handling and a plain error.
func getJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, userAgent string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return resp.StatusCode, nil
}
