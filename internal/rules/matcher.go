package rules

import (
	"regexp"
	"strings"
)

// Verdict is a definitive rule-table decision. A nil verdict from
// Check means no rule matched and the pipeline continues.
type Verdict struct {
	False        bool    // Claim contradicts a known fact
	NeedsContext bool    // Claim is too vague to check (casualty statements)
	Confidence   float64 // 0-1
	Explanation  string  // Canonical correction text
	Method       string  // "rule", "geographical" or "vague_claim"
}

type falseClaim struct {
	pattern    *regexp.Regexp
	fact       string
	confidence float64
}

type geoRule struct {
	pattern     *regexp.Regexp
	isFalse     bool
	explanation string
}

// Matcher checks claims against fixed tables of known-false patterns,
// geography assertions and credibility-indicating phrases.
type Matcher struct {
	falseClaims   []falseClaim
	geoRules      []geoRule
	vaguePatterns []*regexp.Regexp
	verifiedHints []string
	redFlags      []string
}

// NewMatcher builds the matcher with its built-in rule tables.
func NewMatcher() *Matcher {
	return &Matcher{
		falseClaims: []falseClaim{
			{
				pattern:    regexp.MustCompile(`somalia.*(?:in|located|part of|region of).*asia`),
				fact:       "Somalia is located in East Africa, specifically in the Horn of Africa, not Asia.",
				confidence: 1.0,
			},
			{
				pattern:    regexp.MustCompile(`somalia.*(?:in|located|part of|region of).*thailand`),
				fact:       "Somalia is an independent country in East Africa, not a region of Thailand.",
				confidence: 1.0,
			},
			{
				pattern:    regexp.MustCompile(`malaysia.*(?:in|located|part of).*africa`),
				fact:       "Malaysia is located in Southeast Asia, not Africa.",
				confidence: 1.0,
			},
			{
				pattern:    regexp.MustCompile(`earth.*flat`),
				fact:       "The Earth is spherical (oblate spheroid), not flat. This has been scientifically proven.",
				confidence: 1.0,
			},
			{
				pattern:    regexp.MustCompile(`vaccines.*cause.*autism`),
				fact:       "Scientific consensus and multiple studies confirm vaccines do not cause autism.",
				confidence: 1.0,
			},
		},
		geoRules: []geoRule{
			{
				pattern:     regexp.MustCompile(`somalia.*(?:in|located|part of|region of).*asia`),
				isFalse:     true,
				explanation: "Somalia is located in East Africa (Horn of Africa), not Asia. It borders Ethiopia, Kenya, and Djibouti.",
			},
			{
				pattern:     regexp.MustCompile(`somalia.*(?:in|located|part of|region of).*thailand`),
				isFalse:     true,
				explanation: "Somalia is an independent sovereign nation in East Africa, not a region of Thailand. Thailand is in Southeast Asia.",
			},
			{
				pattern:     regexp.MustCompile(`somalia.*(?:in|located|part of).*africa`),
				isFalse:     false,
				explanation: "Correct. Somalia is located in East Africa.",
			},
			{
				pattern:     regexp.MustCompile(`malaysia.*(?:in|located|part of).*africa`),
				isFalse:     true,
				explanation: "Malaysia is located in Southeast Asia, not Africa.",
			},
			{
				pattern:     regexp.MustCompile(`malaysia.*(?:in|located|part of).*asia`),
				isFalse:     false,
				explanation: "Correct. Malaysia is located in Southeast Asia.",
			},
		},
		vaguePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+\s+people\s+(?:were\s+)?(?:killed|died)\s+in\s+\w+$`),
			regexp.MustCompile(`^\d+\s+(?:killed|died)\s+in\s+\w+$`),
			regexp.MustCompile(`^\d+\s+deaths?\s+in\s+\w+$`),
		},
		verifiedHints: []string{
			"according to", "study shows", "research indicates", "data reveals",
			"scientists confirm", "experts say", "official statement", "government announces",
			"peer-reviewed", "published in", "clinical trial", "evidence suggests",
			"who reports", "cdc confirms", "university study", "medical journal",
		},
		redFlags: []string{
			"shocking truth", "they dont want you to know", "secret revealed",
			"miracle cure", "doctors hate this", "unbelievable discovery",
			"conspiracy exposed", "hidden agenda", "big pharma", "government coverup",
			"click here", "you wont believe", "amazing secret", "forbidden knowledge",
		},
	}
}

// Check runs the claim through the false-claim table, the geography
// table and the vague-casualty detector, in that order. First match
// wins. Geography rules that confirm a claim do not terminate the
// pipeline, so they yield no verdict here.
func (m *Matcher) Check(query string) *Verdict {
	lower := strings.ToLower(strings.TrimSpace(query))

	for _, fc := range m.falseClaims {
		if fc.pattern.MatchString(lower) {
			return &Verdict{
				False:       true,
				Confidence:  fc.confidence,
				Explanation: fc.fact,
				Method:      "rule",
			}
		}
	}

	for _, gr := range m.geoRules {
		if gr.pattern.MatchString(lower) {
			if !gr.isFalse {
				break
			}
			return &Verdict{
				False:       true,
				Confidence:  1.0,
				Explanation: gr.explanation,
				Method:      "geographical",
			}
		}
	}

	if m.IsVagueCasualtyClaim(lower) {
		return &Verdict{
			NeedsContext: true,
			Confidence:   0.9,
			Explanation:  "This claim lacks specific context. Casualty claims require verified details including date, specific event, and credible sources.",
			Method:       "vague_claim",
		}
	}

	return nil
}

// IsVagueCasualtyClaim reports whether the claim is a numeric casualty
// statement with no dated, named event attached.
func (m *Matcher) IsVagueCasualtyClaim(query string) bool {
	clean := strings.ToLower(strings.TrimSpace(query))
	for _, p := range m.vaguePatterns {
		if p.MatchString(clean) {
			return true
		}
	}
	return false
}

// PatternScore scans the claim for credibility-indicating and red-flag
// phrases and returns a score in [-1, 1]. Red flags weigh double.
func (m *Matcher) PatternScore(query string) float64 {
	lower := strings.ToLower(query)

	verified := 0
	fake := 0

	for _, hint := range m.verifiedHints {
		if strings.Contains(lower, hint) {
			verified++
		}
	}

	for _, flag := range m.redFlags {
		if strings.Contains(lower, flag) {
			fake += 2
		}
	}

	switch {
	case verified > fake:
		score := float64(verified) / 5
		if score > 1.0 {
			score = 1.0
		}
		return score
	case fake > verified:
		score := -float64(fake) / 5
		if score < -1.0 {
			score = -1.0
		}
		return score
	default:
		return 0.0
	}
}
