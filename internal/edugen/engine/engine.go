package engine

import (
	"context"
	"encoding/json"
)

// LLMConfig is the model and credential selection handed to the engine on
// every call.
type LLMConfig struct {
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	MaxTokens   int
}

// MCQParams is everything the engine receives for one MCQ generation.
type MCQParams struct {
	Topic        string
	Num          int
	Subject      string
	Grade        string
	Instructions string
	IsNCERT      bool
	Subtopic     string
	LLM          LLMConfig
}

// Engine turns structured parameters into generated content. The result is
// opaque JSON; callers pass it through untouched.
type Engine interface {
	Name() string
	GenerateMCQ(ctx context.Context, p MCQParams) (json.RawMessage, error)
}

// CallInfo describes the model call behind a result. Engines that do not
// call a model leave it empty.
type CallInfo struct {
	Model        string
	StopReason   string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type callInfoKey struct{}

// WithCallInfo returns a context under which engines report call details
// into the returned CallInfo.
func WithCallInfo(ctx context.Context) (context.Context, *CallInfo) {
	info := &CallInfo{}
	return context.WithValue(ctx, callInfoKey{}, info), info
}

// RecordCallInfo stores info in the CallInfo attached by WithCallInfo. It is
// a no-op when ctx carries none.
func RecordCallInfo(ctx context.Context, info CallInfo) {
	if dst, ok := ctx.Value(callInfoKey{}).(*CallInfo); ok && dst != nil {
		*dst = info
	}
}
