package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trustify-ai/trustify/internal/model"
)

const currentsCredibility = 7.8

// Currents searches the currentsapi.services v1 search endpoint.
type Currents struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewCurrents creates a Currents API adapter.
func NewCurrents(apiKey string, client *http.Client, userAgent string) *Currents {
	return &Currents{
		apiKey:    apiKey,
		baseURL:   "https://api.currentsapi.services/v1/search",
		client:    client,
		userAgent: userAgent,
	}
}

func (a *Currents) Name() string { return "currents" }

func (a *Currents) Credibility() float64 { return currentsCredibility }

type currentsResponse struct {
	News []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Author      string `json:"author"`
		Published   string `json:"published"`
	} `json:"news"`
}

// Search queries the Currents API for articles matching the query.
func (a *Currents) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("keywords", query)
	params.Set("apiKey", a.apiKey)
	params.Set("language", "en")

	var resp currentsResponse
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
			sourceName = "Currents"
		}

		articles = append(articles, model.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      sourceName,
			PublishedAt: item.Published,
			Provider:    a.Name(),
			Credibility: a.Credibility(),
		})
	}

	return articles, nil
}
