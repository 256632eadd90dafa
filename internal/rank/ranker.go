// Package rank turns the raw fan-out union into a deduplicated,
// relevance-and-credibility ordered article list.
package rank

import (
	"sort"
	"strings"

	"github.com/trustify-ai/trustify/internal/model"
)

// Ranker deduplicates, scores and orders articles.
type Ranker struct {
	credibilityWeight float64
	relevanceWeight   float64
	minTitleLength    int
	maxResults        int
}

// NewRanker creates a ranker from the scoring and search settings.
func NewRanker(scoring model.ScoringConfig, maxResults int) *Ranker {
	return &Ranker{
		credibilityWeight: scoring.CredibilityWeight,
		relevanceWeight:   scoring.RelevanceWeight,
		minTitleLength:    scoring.MinTitleLength,
		maxResults:        maxResults,
	}
}

// Rank deduplicates the union, scores every survivor against the query
// and returns them ordered by combined score, best first. The order is
// deterministic for a given input order.
func (r *Ranker) Rank(query string, articles []model.Article) []model.Article {
	unique := r.dedupe(articles)

	for i := range unique {
		unique[i].Relevance = relevanceScore(query, unique[i])
		unique[i].Combined = unique[i].Credibility*r.credibilityWeight +
			unique[i].Relevance*r.relevanceWeight
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Combined > unique[j].Combined
	})

	if r.maxResults > 0 && len(unique) > r.maxResults {
		unique = unique[:r.maxResults]
	}

	return unique
}

// dedupe drops repeated headlines. The key is the lowercased trimmed
// title; the first occurrence wins, so higher-priority providers should
// come first in the input. Titles below the minimum length are noise
// and are dropped outright.
func (r *Ranker) dedupe(articles []model.Article) []model.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]model.Article, 0, len(articles))

	for _, a := range articles {
		title := strings.ToLower(strings.TrimSpace(a.Title))
		if len(title) < r.minTitleLength {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, a)
	}

	return unique
}

// relevanceScore rates how well one article matches the query on a 0-10
// scale. A verbatim query hit in the title outweighs everything else;
// otherwise individual query words accumulate, title hits counting more
// than description hits.
func relevanceScore(query string, a model.Article) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	title := strings.ToLower(a.Title)
	desc := strings.ToLower(a.Description)

	var words []string
	for _, w := range strings.Fields(q) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}

	var score, max float64

	max += 3.0
	if strings.Contains(title, q) {
		score += 3.0
	}

	max += 2.0
	if strings.Contains(desc, q) {
		score += 2.0
	}

	for _, w := range words {
		max += 1.5 + 1.0
		if strings.Contains(title, w) {
			score += 1.5
		}
		if strings.Contains(desc, w) {
			score += 1.0
		}
	}

	if max == 0 {
		return 0
	}

	return score / max * 10.0
}
