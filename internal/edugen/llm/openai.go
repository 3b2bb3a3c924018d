package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OutputMode selects how an OpenAI-compatible provider asks for JSON.
type OutputMode string

const (
	// OutputJSONSchema uses response_format=json_schema (OpenAI).
	OutputJSONSchema OutputMode = "json_schema"
	// OutputJSONObject uses response_format=json_object and describes the
	// schema in a system message (Groq and most compatible servers).
	OutputJSONObject OutputMode = "json_object"
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Mode    OutputMode
}

// OpenAIProvider talks to the OpenAI API or any compatible endpoint
// (Groq, vLLM, OpenRouter) through go-openai.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	mode   OutputMode
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model is required")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	mode := cfg.Mode
	if mode == "" {
		mode = OutputJSONSchema
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		mode:   mode,
	}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    p.buildMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}

	if req.Schema != nil {
		switch p.mode {
		case OutputJSONObject:
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		default:
			schemaBytes, err := json.Marshal(req.Schema.Definition)
			if err != nil {
				return nil, fmt.Errorf("marshal schema: %w", err)
			}
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        req.Schema.Name,
					Description: req.Schema.Description,
					Schema:      json.RawMessage(schemaBytes),
				},
			}
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in completion response")}
	}

	content := json.RawMessage(resp.Choices[0].Message.Content)
	if req.Schema != nil {
		content = json.RawMessage(stripCodeFence(string(content)))
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) buildMessages(req Request) []openai.ChatCompletionMessage {
	var out []openai.ChatCompletionMessage
	if req.System != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	if req.Schema != nil && p.mode == OutputJSONObject {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: schemaPrompt(req.Schema)})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	if reason == openai.FinishReasonLength {
		return "max_tokens"
	}
	return "end"
}

func mapOpenAIError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return mapStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return mapStatus(reqErr.HTTPStatusCode, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
