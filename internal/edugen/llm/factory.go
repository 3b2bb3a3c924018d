package llm

import (
	"context"
	"fmt"
)

// Provider names accepted by New.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Settings selects and configures one provider.
type Settings struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

// New builds a provider. Construction is cheap and does no I/O, so callers
// may build one per request.
func New(ctx context.Context, s Settings) (Provider, error) {
	switch s.Provider {
	case ProviderGroq:
		return NewOpenAIProvider(OpenAIConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model, Mode: OutputJSONObject})
	case ProviderOpenAI:
		return NewOpenAIProvider(OpenAIConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model, Mode: OutputJSONSchema})
	case ProviderGemini:
		return NewGeminiProvider(ctx, GeminiConfig{APIKey: s.APIKey, Model: s.Model})
	case ProviderAnthropic:
		return NewAnthropicProvider(AnthropicConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
}
