package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trustify-ai/trustify/internal/model"
)

func TestGeminiProvider_Adjudicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected key 'test-key', got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"parts": [
							{"text": "{\"verdict\": \"FALSE\", \"confidence\": \"95%\", \"explanation\": \"Known hoax.\"}"}
						]
					}
				}
			]
		}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(model.LLMConfig{
		Provider: "gemini",
		APIKey:   "test-key",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	v, err := p.Adjudicate(context.Background(), "the earth is flat")
	if err != nil {
		t.Fatalf("adjudicate: %v", err)
	}

	if v.Status != model.StatusUnverified {
		t.Errorf("expected unverified status, got %q", v.Status)
	}
	if !v.Confident() {
		t.Error("expected a confident verdict")
	}
	if v.Method != "llm_gemini" {
		t.Errorf("unexpected method: %q", v.Method)
	}
}

func TestGeminiProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(model.LLMConfig{
		Provider: "gemini",
		APIKey:   "test-key",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	if _, err := p.Adjudicate(context.Background(), "anything"); err == nil {
		t.Error("expected error for API failure")
	} else if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected API message in error, got: %v", err)
	}
}

func TestGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(model.LLMConfig{Provider: "gemini"}); err == nil {
		t.Error("expected error without API key")
	}
}
