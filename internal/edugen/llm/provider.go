// Package llm wraps the provider SDKs behind a single structured-output
// call. Providers never retry; callers decide what a failure means.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt and returns the model's JSON output.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request describes a single-turn generation.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON conforming to it and validates the
	// output before returning.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema names a JSON Schema definition. Name doubles as the cache key for
// the compiled schema, so distinct definitions need distinct names.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
