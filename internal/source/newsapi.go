package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const newsAPICredibility = 8.2

// NewsAPI searches the newsapi.org "everything" endpoint.
type NewsAPI struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewNewsAPI creates a NewsAPI adapter.
func NewNewsAPI(apiKey string, client *http.Client, userAgent string) *NewsAPI {
	return &NewsAPI{
		apiKey:    apiKey,
		baseURL:   "https://newsapi.org/v2/everything",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *NewsAPI) Name() string { return "newsapi" }

func (a *NewsAPI) Credibility() float64 { return newsAPICredibility }

type newsAPIResponse struct {
	Status   string `json:"status"`
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

// Search queries NewsAPI for articles matching the query.
func (a *NewsAPI) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", a.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", "10")

	var resp newsAPIResponse
	if _, err := getJSON(ctx, a.client, a.baseURL, params, a.userAgent, &resp); err != nil {
		return nil, err
	}

	var articles []model.Article
	for _, item := range resp.Articles {
		// NewsAPI tombstones deleted entries with a "[Removed]" title
		if item.Title == "" || item.Title == "[Removed]" || item.URL == "" {
			continue
		}

		sourceName := item.Source.Name
		if sourceName == "" {
			sourceName = "NewsAPI"
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
