// Package qna is the LLM-backed question engine. It turns MCQ parameters
// into one structured-output call and returns the validated JSON.
package qna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/llm"
)

// ProviderFactory builds a provider for one call.
type ProviderFactory func(ctx context.Context, s llm.Settings) (llm.Provider, error)

var mcqSchema = &llm.Schema{
	Name:        "mcq-list",
	Description: `An object with a "questions" array. Each question has "question", exactly four "options", the correct option repeated in "answer", and a short "explanation".`,
	Definition:  contract.MCQListSchema(),
}

type Engine struct {
	provider    string
	newProvider ProviderFactory
}

// New returns an engine for the named llm provider (groq, openai, gemini,
// anthropic).
func New(provider string) *Engine {
	return NewWithFactory(provider, llm.New)
}

func NewWithFactory(provider string, f ProviderFactory) *Engine {
	return &Engine{provider: provider, newProvider: f}
}

func (e *Engine) Name() string { return e.provider }

func (e *Engine) GenerateMCQ(ctx context.Context, p engine.MCQParams) (json.RawMessage, error) {
	if strings.TrimSpace(p.LLM.APIKey) == "" {
		return nil, &engine.GenerationError{
			Code: engine.CodeMisconfigured,
			Err:  fmt.Errorf("%s: %w", e.provider, llm.ErrMissingCredential),
		}
	}

	prov, err := e.newProvider(ctx, llm.Settings{
		Provider: e.provider,
		Model:    p.LLM.Model,
		BaseURL:  p.LLM.BaseURL,
		APIKey:   p.LLM.APIKey,
	})
	if err != nil {
		return nil, classify(err)
	}

	resp, err := prov.Generate(ctx, llm.Request{
		System:      systemPrompt(p),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userPrompt(p)}},
		Schema:      mcqSchema,
		MaxTokens:   p.LLM.MaxTokens,
		Temperature: p.LLM.Temperature,
	})
	if err != nil {
		return nil, classify(err)
	}

	model := resp.Model
	if model == "" {
		model = prov.ModelID()
	}
	engine.RecordCallInfo(ctx, engine.CallInfo{
		Model:        model,
		StopReason:   resp.StopReason,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	})
	return resp.Content, nil
}

func systemPrompt(p engine.MCQParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an experienced %s teacher writing assessment material for grade %s students.", p.Subject, p.Grade)
	if p.IsNCERT {
		fmt.Fprintf(&b, "\nAlign every question with the NCERT curriculum for grade %s %s: use NCERT textbook terminology and stay within the prescribed syllabus.", p.Grade, p.Subject)
	}
	return b.String()
}

func userPrompt(p engine.MCQParams) string {
	var b strings.Builder
	b.WriteString(p.Instructions)
	fmt.Fprintf(&b, "\n\nWrite exactly %d questions on %q", p.Num, p.Topic)
	if p.Subtopic != "" {
		fmt.Fprintf(&b, " (subtopic %q)", p.Subtopic)
	}
	b.WriteString(".\nEach question has exactly four options. \"answer\" must repeat the correct option verbatim. Keep \"explanation\" to one or two sentences.")
	return b.String()
}

func classify(err error) *engine.GenerationError {
	var (
		auth        *llm.ErrAuth
		rate        *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		unavailable *llm.ErrProviderUnavailable
		rejected    *llm.ErrRequestRejected
	)
	code := engine.CodeFailed
	switch {
	case errors.Is(err, llm.ErrMissingCredential), errors.Is(err, llm.ErrUnknownProvider):
		code = engine.CodeMisconfigured
	case errors.As(err, &auth):
		code = engine.CodeAuth
	case errors.As(err, &rate):
		code = engine.CodeRateLimited
	case errors.As(err, &invalid):
		code = engine.CodeInvalidOutput
	case errors.As(err, &unavailable):
		code = engine.CodeUnavailable
	case errors.As(err, &rejected):
		if rejected.NotFound() {
			code = engine.CodeMisconfigured
		}
	default:
		return engine.Wrap(err)
	}
	return &engine.GenerationError{Code: code, Err: err}
}
