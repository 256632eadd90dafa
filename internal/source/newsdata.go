package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const newsDataCredibility = 8.0

// NewsData searches the newsdata.io latest-news endpoint.
type NewsData struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewNewsData creates a NewsData.io adapter.
func NewNewsData(apiKey string, client *http.Client, userAgent string) *NewsData {
	return &NewsData{
		apiKey:    apiKey,
		baseURL:   "https://newsdata.io/api/1/news",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *NewsData) Name() string { return "newsdata" }

func (a *NewsData) Credibility() float64 { return newsDataCredibility }

type newsDataResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		SourceID    string `json:"source_id"`
		PubDate     string `json:"pubDate"`
	} `json:"results"`
}

// Search queries NewsData.io for articles matching the query.
func (a *NewsData) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("apikey", a.apiKey)
	params.Set("q", query)
	params.Set("language", "en")

	var resp newsDataResponse
	if _, err := getJSON(ctx, a.client, a.baseURL, params, a.userAgent, &resp); err != nil {
		return nil, err
	}

	var articles []model.Article
	for _, item := range resp.Results {
		if item.Title == "" || item.Link == "" {
			continue
		}

		sourceName := item.SourceID
		if sourceName == "" {
			sourceName = "NewsData.io"
		}

		articles = append(articles, model.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      sourceName,
			PublishedAt: item.PubDate,
			Provider:    a.Name(),
			Credibility: a.Credibility(),
		})
	}

	return articles, nil
}
