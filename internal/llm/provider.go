// Package llm holds the optional claim-adjudication providers. The
// engine works fully without one; when configured, the provider gets
// first say and a confident negative ends the verification early.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/trustify-ai/trustify/internal/model"
)

// Provider defines the interface for LLM adjudicators.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Adjudicate asks the model for a verdict on one claim.
	Adjudicate(ctx context.Context, claim string) (*Verdict, error)
}

// Verdict is the provider's judgment, already mapped onto the common
// status/score vocabulary.
type Verdict struct {
	Status           model.Status
	Confidence       model.Confidence
	CredibilityScore float64
	Explanation      string
	Method           string
}

// Confident reports whether the verdict is strong enough to end a
// verification without consulting the news sources.
func (v *Verdict) Confident() bool {
	return v.Confidence == model.ConfidenceHigh
}

// structuredVerdict is the JSON shape the prompt asks for.
type structuredVerdict struct {
	Verdict     string `json:"verdict"`
	Confidence  string `json:"confidence"`
	Explanation string `json:"explanation"`
}

// BuildPrompt constructs the adjudication prompt for one claim.
func BuildPrompt(claim string) string {
	return fmt.Sprintf(`You are a careful fact-checker. Assess the following claim.

Claim: %q

Respond with a single JSON object, nothing else:
{
  "verdict": "TRUE" | "FALSE" | "PARTIALLY_TRUE" | "UNVERIFIABLE",
  "confidence": "NN%%",
  "explanation": "one or two sentences"
}

Rules:
- FALSE only for claims you are certain are wrong (known misinformation, impossible events, wrong geography).
- UNVERIFIABLE for anything that depends on very recent news you cannot know.
- Keep the explanation short and factual.`, claim)
}

var confidencePattern = regexp.MustCompile(`(\d{1,3})\s*%`)

// ParseVerdict maps a raw model response onto a Verdict. It tries the
// structured JSON shape first and falls back to keyword heuristics, so
// a chatty model that ignores the format still yields something usable.
func ParseVerdict(raw, providerName string) *Verdict {
	text := strings.TrimSpace(raw)

	verdict := &Verdict{
		Status:           model.StatusUnverified,
		Confidence:       model.ConfidenceLow,
		CredibilityScore: 5.0,
		Explanation:      text,
		Method:           "llm_" + providerName,
	}

	var structured structuredVerdict
	if err := json.Unmarshal([]byte(extractJSON(text)), &structured); err == nil && structured.Verdict != "" {
		applyLabel(verdict, structured.Verdict)
		if structured.Explanation != "" {
			verdict.Explanation = structured.Explanation
		}
		if pct, ok := parsePercent(structured.Confidence); ok {
			applyPercent(verdict, pct)
		}
		return verdict
	}

	// Heuristic fallback on the raw text
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "PARTIALLY"):
		applyLabel(verdict, "PARTIALLY_TRUE")
	case strings.Contains(upper, "FALSE"):
		applyLabel(verdict, "FALSE")
	case strings.Contains(upper, "TRUE"):
		applyLabel(verdict, "TRUE")
	}
	if pct, ok := parsePercent(text); ok {
		applyPercent(verdict, pct)
	}

	return verdict
}

func applyLabel(v *Verdict, label string) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "FALSE":
		v.Status = model.StatusUnverified
		v.CredibilityScore = 1.0
		v.Confidence = model.ConfidenceHigh
	case "TRUE":
		v.Status = model.StatusVerified
		v.CredibilityScore = 9.0
		v.Confidence = model.ConfidenceHigh
	case "PARTIALLY_TRUE", "PARTIALLY TRUE":
		v.Status = model.StatusPartiallyVerified
		v.CredibilityScore = 6.0
		v.Confidence = model.ConfidenceMedium
	default:
		v.Status = model.StatusUnverified
		v.CredibilityScore = 5.0
		v.Confidence = model.ConfidenceLow
	}
}

func applyPercent(v *Verdict, pct int) {
	switch {
	case pct >= 80:
		v.Confidence = model.ConfidenceHigh
	case pct >= 50:
		v.Confidence = model.ConfidenceMedium
	default:
		v.Confidence = model.ConfidenceLow
	}
}

func parsePercent(text string) (int, bool) {
	match := confidencePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	pct := 0
	for _, r := range match[1] {
		pct = pct*10 + int(r-'0')
	}
	if pct > 100 {
		return 0, false
	}
	return pct, true
}

// extractJSON pulls the first {...} block out of a response so markdown
// fences or leading prose do not break the parse.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
