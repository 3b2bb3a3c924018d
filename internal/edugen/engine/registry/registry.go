package registry

import (
	"fmt"
	"strings"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/config"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine/mock"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine/qna"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/llm"
)

// New returns the engine selected by cfg.Type.
func New(cfg config.EngineConfig) (engine.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case config.EngineMock:
		return mock.New(), nil
	case config.EngineGroq:
		return qna.New(llm.ProviderGroq), nil
	case config.EngineOpenAI, "oai_http":
		return qna.New(llm.ProviderOpenAI), nil
	case config.EngineGemini:
		return qna.New(llm.ProviderGemini), nil
	case config.EngineAnthropic:
		return qna.New(llm.ProviderAnthropic), nil
	default:
		return nil, fmt.Errorf("unsupported engine type %q", cfg.Type)
	}
}

// LLMConfig projects the engine config into the per-call settings.
func LLMConfig(cfg config.EngineConfig) engine.LLMConfig {
	return engine.LLMConfig{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}
