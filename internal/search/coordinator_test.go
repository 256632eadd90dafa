package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/source"
)

// fakeAdapter is a controllable source for coordinator tests.
type fakeAdapter struct {
	name     string
	articles []model.Article
	err      error
	delay    time.Duration
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Credibility() float64 { return 8.0 }

func (f *fakeAdapter) Search(ctx context.Context, query string) ([]model.Article, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func testSearchConfig() model.SearchConfig {
	return model.SearchConfig{
		OverallTimeout: 2 * time.Second,
		PerTaskTimeout: time.Second,
		Workers:        4,
		RatePerSecond:  100,
		RateBurst:      10,
	}
}

func TestCoordinator_UnionOfResults(t *testing.T) {
	adapters := []source.Adapter{
		&fakeAdapter{name: "a", articles: []model.Article{{Title: "first", URL: "https://a.example/1"}}},
		&fakeAdapter{name: "b", articles: []model.Article{
			{Title: "second", URL: "https://b.example/1"},
			{Title: "third", URL: "https://b.example/2"},
		}},
	}

	c := NewCoordinator(adapters, testSearchConfig())

	articles, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("expected union of 3 articles, got %d", len(articles))
	}
}

func TestCoordinator_FailingAdapterIgnored(t *testing.T) {
	adapters := []source.Adapter{
		&fakeAdapter{name: "ok", articles: []model.Article{{Title: "kept", URL: "https://ok.example/1"}}},
		&fakeAdapter{name: "broken", err: errors.New("upstream down")},
	}

	c := NewCoordinator(adapters, testSearchConfig())

	articles, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("adapter failure must not fail the search: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article from the healthy adapter, got %d", len(articles))
	}
	if articles[0].Title != "kept" {
		t.Errorf("unexpected article: %q", articles[0].Title)
	}
}

func TestCoordinator_SlowAdapterDropped(t *testing.T) {
	cfg := testSearchConfig()
	cfg.OverallTimeout = 150 * time.Millisecond
	cfg.PerTaskTimeout = 100 * time.Millisecond

	adapters := []source.Adapter{
		&fakeAdapter{name: "fast", articles: []model.Article{{Title: "in time", URL: "https://fast.example/1"}}},
		&fakeAdapter{name: "slow", delay: 5 * time.Second, articles: []model.Article{{Title: "too late", URL: "https://slow.example/1"}}},
	}

	c := NewCoordinator(adapters, cfg)

	start := time.Now()
	articles, err := c.Search(context.Background(), "anything")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "in time" {
		t.Fatalf("expected only the fast adapter's article, got %v", articles)
	}
	if elapsed > time.Second {
		t.Errorf("search should return at the overall deadline, took %v", elapsed)
	}
}

func TestCoordinator_NoAdapters(t *testing.T) {
	c := NewCoordinator(nil, testSearchConfig())

	articles, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles, got %d", len(articles))
	}
}

func TestCoordinator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator([]source.Adapter{&fakeAdapter{name: "a"}}, testSearchConfig())

	if _, err := c.Search(ctx, "anything"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
