package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const theNewsAPICredibility = 8.1

// TheNewsAPI searches the thenewsapi.com all-news endpoint.
type TheNewsAPI struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewTheNewsAPI creates a TheNewsAPI adapter.
func NewTheNewsAPI(apiKey string, client *http.Client, userAgent string) *TheNewsAPI {
	return &TheNewsAPI{
		apiKey:    apiKey,
		baseURL:   "https://api.thenewsapi.com/v1/news/all",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *TheNewsAPI) Name() string { return "thenewsapi" }

func (a *TheNewsAPI) Credibility() float64 { return theNewsAPICredibility }

type theNewsAPIResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

// Search queries TheNewsAPI for articles matching the query.
func (a *TheNewsAPI) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("api_token", a.apiKey)
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("limit", "8")

	var resp theNewsAPIResponse
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
			sourceName = "TheNewsAPI"
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
