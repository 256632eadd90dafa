// Package page fetches one article URL and extracts its headline, body
// text and publisher for direct URL verification.
package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/trustify-ai/trustify/internal/util"
	"github.com/trustify-ai/trustify/internal/worker"
)

var urlPattern = regexp.MustCompile(`^https?://`)

// IsURL reports whether the query is an article URL rather than a
// claim.
func IsURL(query string) bool {
	return urlPattern.MatchString(strings.TrimSpace(query))
}

// PageContent is what the extractor recovers from an article page.
type PageContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Source  string `json:"source"`
}

// Extractor fetches article pages politely: robots.txt is honored and
// fetches are rate-limited per host.
type Extractor struct {
	client    *http.Client
	robots    *util.RobotsChecker
	limiter   *worker.Limiter
	userAgent string
	maxBody   int64
}

// NewExtractor creates a page extractor.
func NewExtractor(client *http.Client, robots *util.RobotsChecker, limiter *worker.Limiter, userAgent string, maxBody int64) *Extractor {
	return &Extractor{
		client:    client,
		robots:    robots,
		limiter:   limiter,
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

// Extract fetches the page and pulls out its headline and body text.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*PageContent, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	if e.robots != nil && !e.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("robots.txt disallows fetching %s", parsed.Host)
	}
	if e.limiter != nil {
		if err := e.limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, e.maxBody))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	// Strip chrome before looking at text
	doc.Find("script, style, nav, footer, aside, header").Remove()

	domain := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	return &PageContent{
		Title:   extractTitle(doc),
		Content: extractBody(doc),
		URL:     rawURL,
		Domain:  domain,
		Source:  sourceName(domain),
	}, nil
}

// titleSelectors are tried in order; the first non-empty hit wins.
var titleSelectors = []string{
	"h1",
	".headline",
	".title",
	`[data-testid="headline"]`,
	".article-title",
	".post-title",
	"title",
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// contentSelectors point at the usual article body containers.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	"main",
}

// extractBody collects the first few substantial paragraphs from the
// article container. Short paragraphs are usually bylines and captions.
func extractBody(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}

		var paragraphs []string
		container.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if len(text) > 100 {
				paragraphs = append(paragraphs, text)
			}
			return len(paragraphs) < 5
		})

		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

// knownSources maps publisher domains to display names.
var knownSources = map[string]string{
	"bbc.com":            "BBC News",
	"bbc.co.uk":          "BBC News",
	"reuters.com":        "Reuters",
	"apnews.com":         "Associated Press",
	"cnn.com":            "CNN",
	"theguardian.com":    "The Guardian",
	"nytimes.com":        "The New York Times",
	"washingtonpost.com": "The Washington Post",
	"aljazeera.com":      "Al Jazeera",
	"npr.org":            "NPR",
}

// sourceName resolves a domain to a publisher name, falling back to a
// title-cased version of the bare domain.
func sourceName(domain string) string {
	if name, ok := knownSources[domain]; ok {
		return name
	}
	for known, name := range knownSources {
		if strings.HasSuffix(domain, "."+known) {
			return name
		}
	}

	bare := domain
	if i := strings.IndexByte(bare, '.'); i > 0 {
		bare = bare[:i]
	}
	if bare == "" {
		return domain
	}
	return strings.ToUpper(bare[:1]) + bare[1:]
}
