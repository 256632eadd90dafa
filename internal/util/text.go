package util

import "strings"

// TokenOverlap returns the fraction (0-1) of query tokens present in
// the given text. Comparison is case-insensitive.
func TokenOverlap(query, text string) float64 {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	matches := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			matches++
		}
	}

	return float64(matches) / float64(len(words))
}
