package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trustify-ai/trustify/internal/cache"
	"github.com/trustify-ai/trustify/internal/model"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Test Feed</title>
<item>
	<title>Earthquake strikes northern Japan</title>
	<description>A magnitude 6 earthquake hit the region on Friday.</description>
	<link>https://example.com/quake</link>
	<pubDate>Fri, 28 Aug 2026 09:00:00 GMT</pubDate>
</item>
<item>
	<title>Stock markets rally on tech earnings</title>
	<description>Indexes closed higher after strong quarterly reports.</description>
	<link>https://example.com/markets</link>
	<pubDate>Fri, 28 Aug 2026 08:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func TestRSSFeed_Search(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeedXML))
	}))
	defer server.Close()

	feed := model.FeedConfig{Name: "Test Feed", URL: server.URL, Credibility: 8.8}
	adapter := NewRSSFeed(feed, server.Client(), "test-agent", nil, 0, 2_000_000)

	articles, err := adapter.Search(context.Background(), "earthquake japan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 matching article, got %d", len(articles))
	}
	if articles[0].Title != "Earthquake strikes northern Japan" {
		t.Errorf("unexpected title: %q", articles[0].Title)
	}
	if articles[0].Source != "Test Feed" {
		t.Errorf("expected source 'Test Feed', got %q", articles[0].Source)
	}
	if articles[0].Credibility != 8.8 {
		t.Errorf("expected feed credibility 8.8, got %.1f", articles[0].Credibility)
	}
	if articles[0].Provider != "rss" {
		t.Errorf("expected provider 'rss', got %q", articles[0].Provider)
	}
}

func TestRSSFeed_CachesBody(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(testFeedXML))
	}))
	defer server.Close()

	feed := model.FeedConfig{Name: "Test Feed", URL: server.URL, Credibility: 8.8}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	adapter := NewRSSFeed(feed, server.Client(), "test-agent", store, time.Minute, 2_000_000)

	for i := 0; i < 3; i++ {
		if _, err := adapter.Search(context.Background(), "earthquake"); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}

	if hits != 1 {
		t.Errorf("expected 1 upstream fetch with caching, got %d", hits)
	}
}

func TestRelevantToQuery(t *testing.T) {
	tests := []struct {
		query string
		title string
		desc  string
		want  bool
	}{
		{"earthquake japan", "Earthquake strikes northern Japan", "", true},
		{"earthquake", "Earthquake strikes northern Japan", "", true},
		{"flood in spain", "Stock markets rally", "Indexes closed higher.", false},
		{"markets rally earnings", "Stock markets rally on tech earnings", "", true},
		{"", "Anything", "at all", false},
	}

	for _, tt := range tests {
		if got := relevantToQuery(tt.query, tt.title, tt.desc); got != tt.want {
			t.Errorf("relevantToQuery(%q, %q): got %v, want %v", tt.query, tt.title, got, tt.want)
		}
	}
}
