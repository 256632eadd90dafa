package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewsAPI_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "moon landing" {
			t.Errorf("expected query 'moon landing', got %q", got)
		}
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("expected apiKey 'test-key', got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"title": "Apollo anniversary celebrated",
					"description": "Fifty-seven years since the landing",
					"url": "https://example.com/apollo",
					"publishedAt": "2026-08-20T10:00:00Z",
					"source": {"name": "Example News"}
				},
				{
					"title": "[Removed]",
					"description": "",
					"url": "https://example.com/removed",
					"source": {"name": "Example News"}
				}
			]
		}`))
	}))
	defer server.Close()

	adapter := NewNewsAPI("test-key", server.Client(), "test-agent")
	adapter.baseURL = server.URL

	articles, err := adapter.Search(context.Background(), "moon landing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article (removed entry skipped), got %d", len(articles))
	}
	if articles[0].Title != "Apollo anniversary celebrated" {
		t.Errorf("unexpected title: %q", articles[0].Title)
	}
	if articles[0].Provider != "newsapi" {
		t.Errorf("expected provider 'newsapi', got %q", articles[0].Provider)
	}
	if articles[0].Credibility != newsAPICredibility {
		t.Errorf("expected credibility %.1f, got %.1f", newsAPICredibility, articles[0].Credibility)
	}
}

func TestNewsAPI_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewNewsAPI("test-key", server.Client(), "test-agent")
	adapter.baseURL = server.URL

	if _, err := adapter.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestGNews_QuotaExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewGNews("test-key", server.Client(), "test-agent")
	adapter.baseURL = server.URL

	articles, err := adapter.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("403 should degrade to empty result, got error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles, got %d", len(articles))
	}
}
