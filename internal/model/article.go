package model

// Article is the common shape every provider response is mapped into.
// Articles are ephemeral: fetched per request, never persisted.
type Article struct {
	Title       string  `json:"title"`                  // Headline text
	Description string  `json:"description,omitempty"`  // Summary or lead paragraph
	URL         string  `json:"url"`                    // Link to the article
	Source      string  `json:"source"`                 // Publisher name (e.g., "BBC News")
	PublishedAt string  `json:"published_at,omitempty"` // Provider-reported publish time, as given
	Provider    string  `json:"provider"`               // Which adapter produced it (e.g., "newsapi", "rss")
	Credibility float64 `json:"credibility"`            // Provider-assigned trust constant (0-10)
	Relevance   float64 `json:"relevance"`              // Computed query overlap (0-10)
	Combined    float64 `json:"combined"`               // Blended credibility+relevance used for ranking
}

// SourceRef is the subset of an Article surfaced to callers as an
// official source reference.
type SourceRef struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Ref converts an article into a source reference.
func (a Article) Ref() SourceRef {
	return SourceRef{
		Title:       a.Title,
		URL:         a.URL,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
	}
}
