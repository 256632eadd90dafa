package source

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const gnewsCredibility = 8.0

// GNews searches the gnews.io v4 search endpoint. The free tier returns
// HTTP 403 once the daily quota is exhausted; that case degrades to an
// empty result rather than an error so the other providers still count.
type GNews struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewGNews creates a GNews adapter.
func NewGNews(apiKey string, client *http.Client, userAgent string) *GNews {
	return &GNews{
		apiKey:    apiKey,
		baseURL:   "https://gnews.io/api/v4/search",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *GNews) Name() string { return "gnews" }

func (a *GNews) Credibility() float64 { return gnewsCredibility }

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search queries GNews for articles matching the query.
func (a *GNews) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("token", a.apiKey)
	params.Set("lang", "en")
	params.Set("max", "5")

	var resp gnewsResponse
	status, err := getJSON(ctx, a.client, a.baseURL, params, a.userAgent, &resp)
	if status == http.StatusForbidden {
		log.Printf("gnews: quota exhausted, skipping provider")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var articles []model.Article
	for _, item := range resp.Articles {
		if item.Title == "" || item.URL == "" {
			continue
		}

		sourceName := item.Source.Name
		if sourceName == "" {
			sourceName = "GNews"
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
