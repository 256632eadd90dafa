package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const worldNewsCredibility = 7.9

// WorldNews searches the worldnewsapi.com search endpoint.
type WorldNews struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewWorldNews creates a World News API adapter.
func NewWorldNews(apiKey string, client *http.Client, userAgent string) *WorldNews {
	return &WorldNews{
		apiKey:    apiKey,
		baseURL:   "https://api.worldnewsapi.com/search-news",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *WorldNews) Name() string { return "worldnews" }

func (a *WorldNews) Credibility() float64 { return worldNewsCredibility }

type worldNewsResponse struct {
	News []struct {
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		URL         string `json:"url"`
		Author      string `json:"author"`
		PublishDate string `json:"publish_date"`
	} `json:"news"`
}

// Search queries the World News API for articles matching the query.
func (a *WorldNews) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("api-key", a.apiKey)
	params.Set("text", query)
	params.Set("number", "8")

	var resp worldNewsResponse
	if _, err := getJSON(ctx, a.client, a.baseURL, params, a.userAgent, &resp); err != nil {
		return nil, err
	}

	var articles []model.Article
	for _, item := range resp.News {
		if item.Title == "" || item.URL == "" {
			continue
		}

		sourceName := item.Author
		if sourceName == "" {
			sourceName = "WorldNewsAPI"
		}

		articles = append(articles, model.Article{
			Title:       item.Title,
			Description: item.Summary,
			URL:         item.URL,
			Source:      sourceName,
			PublishedAt: item.PublishDate,
			Provider:    a.Name(),
			Credibility: a.Credibility(),
		})
	}

	return articles, nil
}
