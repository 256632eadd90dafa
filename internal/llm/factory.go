package llm

import (
	"fmt"
	"strings"

	"github.com/trustify-ai/trustify/internal/model"
)

// NewProvider creates an adjudication provider from configuration.
// An empty provider name means adjudication is disabled; that returns
// (nil, nil), not an error.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "gemini":
		return NewGeminiProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, gemini)", cfg.Provider)
	}
}
