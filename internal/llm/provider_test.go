package llm

import (
	"testing"

	"github.com/trustify-ai/trustify/internal/model"
)

func TestParseVerdict_StructuredJSON(t *testing.T) {
	raw := `{"verdict": "FALSE", "confidence": "95%", "explanation": "Known misinformation."}`

	v := ParseVerdict(raw, "openai")

	if v.Status != model.StatusUnverified {
		t.Errorf("expected unverified status, got %q", v.Status)
	}
	if v.CredibilityScore != 1.0 {
		t.Errorf("expected score 1.0, got %.1f", v.CredibilityScore)
	}
	if v.Confidence != model.ConfidenceHigh {
		t.Errorf("expected high confidence, got %q", v.Confidence)
	}
	if v.Explanation != "Known misinformation." {
		t.Errorf("unexpected explanation: %q", v.Explanation)
	}
	if v.Method != "llm_openai" {
		t.Errorf("unexpected method: %q", v.Method)
	}
}

func TestParseVerdict_JSONInMarkdownFence(t *testing.T) {
	raw := "```json\n{\"verdict\": \"TRUE\", \"confidence\": \"90%\", \"explanation\": \"Widely reported.\"}\n```"

	v := ParseVerdict(raw, "gemini")

	if v.Status != model.StatusVerified {
		t.Errorf("expected verified status, got %q", v.Status)
	}
	if v.CredibilityScore != 9.0 {
		t.Errorf("expected score 9.0, got %.1f", v.CredibilityScore)
	}
}

func TestParseVerdict_HeuristicFallback(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		status    model.Status
		score     float64
		confident model.Confidence
	}{
		{
			name:      "plain false",
			raw:       "This claim is FALSE. Confidence: 92%",
			status:    model.StatusUnverified,
			score:     1.0,
			confident: model.ConfidenceHigh,
		},
		{
			name:      "plain true",
			raw:       "The claim is TRUE based on wide reporting.",
			status:    model.StatusVerified,
			score:     9.0,
			confident: model.ConfidenceHigh,
		},
		{
			name:      "partially true wins over true",
			raw:       "PARTIALLY TRUE: the numbers are exaggerated. 60% confidence.",
			status:    model.StatusPartiallyVerified,
			score:     6.0,
			confident: model.ConfidenceMedium,
		},
		{
			name:      "no signal",
			raw:       "I cannot assess this claim.",
			status:    model.StatusUnverified,
			score:     5.0,
			confident: model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVerdict(tt.raw, "test")
			if v.Status != tt.status {
				t.Errorf("status: got %q, want %q", v.Status, tt.status)
			}
			if v.CredibilityScore != tt.score {
				t.Errorf("score: got %.1f, want %.1f", v.CredibilityScore, tt.score)
			}
			if v.Confidence != tt.confident {
				t.Errorf("confidence: got %q, want %q", v.Confidence, tt.confident)
			}
		})
	}
}

func TestParseVerdict_LowPercentLowersConfidence(t *testing.T) {
	v := ParseVerdict("FALSE, but only 40% confident.", "test")

	if v.Status != model.StatusUnverified {
		t.Errorf("expected unverified status, got %q", v.Status)
	}
	if v.Confidence != model.ConfidenceLow {
		t.Errorf("expected low confidence for 40%%, got %q", v.Confidence)
	}
	if v.Confident() {
		t.Error("a 40% verdict must not count as confident")
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(model.LLMConfig{Provider: ""}); p != nil || err != nil {
		t.Errorf("empty provider should disable adjudication, got %v, %v", p, err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "openai", APIKey: "k"}); err != nil {
		t.Errorf("openai with key should construct: %v", err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "gemini", APIKey: "k"}); err != nil {
		t.Errorf("gemini with key should construct: %v", err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "martian"}); err == nil {
		t.Error("unknown provider should error")
	}
}
