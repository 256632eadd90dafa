package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/trustify-ai/trustify/internal/cache"
	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/util"
)

// rssMaxEntries bounds how deep into a feed we look for matches.
const rssMaxEntries = 15

// rssMinOverlap is the token-overlap fraction a headline needs when the
// query is not an exact substring.
const rssMinOverlap = 0.6

// RSSFeed is an adapter over one RSS/Atom feed. Feed bodies are cached
// so a batch of verifications does not refetch the same feed.
type RSSFeed struct {
	feed      model.FeedConfig
	client    *http.Client
	userAgent string
	store     cache.Cache
	ttl       time.Duration
	parser    *gofeed.Parser
	maxBody   int64
}

// NewRSSFeed creates an adapter for one configured feed. store may be
// nil to disable caching.
func NewRSSFeed(feed model.FeedConfig, client *http.Client, userAgent string, store cache.Cache, ttl time.Duration, maxBody int64) *RSSFeed {
	return &RSSFeed{
		feed:      feed,
		client:    client,
		userAgent: userAgent,
		store:     store,
		ttl:       ttl,
		parser:    gofeed.NewParser(),
		maxBody:   maxBody,
	}
}

func (a *RSSFeed) Name() string { return "rss" }

func (a *RSSFeed) Credibility() float64 { return a.feed.Credibility }

// FeedName returns the configured display name of the feed.
func (a *RSSFeed) FeedName() string { return a.feed.Name }

// Search fetches the feed and returns the entries relevant to the
// query. Relevance is a cheap prefilter: the query appears verbatim in
// the headline or description, or most of its tokens do.
func (a *RSSFeed) Search(ctx context.Context, query string) ([]model.Article, error) {
	body, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := a.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", a.feed.Name, err)
	}

	items := parsed.Items
	if len(items) > rssMaxEntries {
		items = items[:rssMaxEntries]
	}

	var articles []model.Article
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		if !relevantToQuery(query, item.Title, item.Description) {
			continue
		}

		articles = append(articles, model.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      a.feed.Name,
			PublishedAt: item.Published,
			Provider:    a.Name(),
			Credibility: a.feed.Credibility,
		})
	}

	return articles, nil
}

func (a *RSSFeed) fetch(ctx context.Context) ([]byte, error) {
	key := cache.Key(a.feed.URL)
	if a.store != nil {
		if body, ok := a.store.Get(key); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", a.feed.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s: unexpected status %d", a.feed.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", a.feed.Name, err)
	}

	if a.store != nil {
		_ = a.store.Set(key, body, a.ttl)
	}

	return body, nil
}

// relevantToQuery reports whether a headline plausibly concerns the
// query. Exact substring wins; otherwise enough query tokens must
// appear in the combined text.
func relevantToQuery(query, title, description string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}

	text := strings.ToLower(title + " " + description)
	if strings.Contains(text, q) {
		return true
	}

	return util.TokenOverlap(q, text) >= rssMinOverlap
}
