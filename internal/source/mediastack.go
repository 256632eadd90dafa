package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const mediaStackCredibility = 7.8

// MediaStack searches the mediastack.com news endpoint. The free tier
// is HTTP only.
type MediaStack struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewMediaStack creates a MediaStack adapter.
func NewMediaStack(apiKey string, client *http.Client, userAgent string) *MediaStack {
	return &MediaStack{
		apiKey:    apiKey,
		baseURL:   "http://api.mediastack.com/v1/news",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *MediaStack) Name() string { return "mediastack" }

func (a *MediaStack) Credibility() float64 { return mediaStackCredibility }

type mediaStackResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

// Search queries MediaStack for articles matching the query.
func (a *MediaStack) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("access_key", a.apiKey)
	params.Set("keywords", query)
	params.Set("languages", "en")

	var resp mediaStackResponse
	if _, err := getJSON(ctx, a.client, a.baseURL, params, a.userAgent, &resp); err != nil {
		return nil, err
	}

	var articles []model.Article
	for _, item := range resp.Data {
		if item.Title == "" || item.URL == "" {
			continue
		}

		sourceName := item.Source
		if sourceName == "" {
			sourceName = "MediaStack"
		}

		articles = append(articles, model.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      sourceName,
			PublishedAt: item.PublishedAt,
			Provider:    a.Name(),
			Credibility: a.Credibility(),
		})
	}

	return articles, nil
}
