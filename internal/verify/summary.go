package verify

import (
	"fmt"
	"strings"

	"github.com/trustify-ai/trustify/internal/model"
)

// buildSummary produces the short human-readable digest attached to a
// result with evidence behind it.
func buildSummary(query string, articles []model.Article) string {
	if len(articles) == 0 {
		return ""
	}

	topic := strings.TrimSpace(query)
	if len(topic) > 60 {
		topic = topic[:60] + "..."
	}

	outlets := make([]string, 0, 3)
	seen := make(map[string]struct{})
	for _, a := range articles {
		if a.Source == "" {
			continue
		}
		if _, dup := seen[a.Source]; dup {
			continue
		}
		seen[a.Source] = struct{}{}
		outlets = append(outlets, a.Source)
		if len(outlets) == 3 {
			break
		}
	}

	summary := fmt.Sprintf("Found %d articles about %q", len(articles), topic)
	if len(outlets) > 0 {
		summary += fmt.Sprintf(" from %s", strings.Join(outlets, ", "))
	}
	summary += fmt.Sprintf(". Latest: %s", articles[0].Title)

	return summary
}
