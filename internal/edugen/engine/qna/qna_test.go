package qna

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/llm"
)

type fakeProvider struct {
	got  llm.Request
	resp *llm.Response
	err  error
}

func (f *fakeProvider) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.got = req
	return f.resp, f.err
}

func (f *fakeProvider) ModelID() string { return "fake" }

func params() engine.MCQParams {
	return engine.MCQParams{
		Topic:        "Algebra",
		Num:          3,
		Subject:      "Math",
		Grade:        "10",
		Instructions: "TEMPLATE+custom",
		Subtopic:     "Linear Equations",
		LLM:          engine.LLMConfig{Model: "llama3-70b-8192", BaseURL: "https://api.groq.com/openai/v1", APIKey: "gsk_test", MaxTokens: 512},
	}
}

func TestGenerateMCQPassesContentThrough(t *testing.T) {
	fp := &fakeProvider{resp: &llm.Response{Content: json.RawMessage(`{"questions":[]}`)}}
	var settings llm.Settings
	e := NewWithFactory("groq", func(_ context.Context, s llm.Settings) (llm.Provider, error) {
		settings = s
		return fp, nil
	})

	out, err := e.GenerateMCQ(context.Background(), params())
	require.NoError(t, err)

	assert.Equal(t, `{"questions":[]}`, string(out))
	assert.Equal(t, llm.Settings{Provider: "groq", Model: "llama3-70b-8192", BaseURL: "https://api.groq.com/openai/v1", APIKey: "gsk_test"}, settings)
	require.Len(t, fp.got.Messages, 1)
	assert.Contains(t, fp.got.Messages[0].Content, "TEMPLATE+custom")
	assert.Contains(t, fp.got.Messages[0].Content, "exactly 3 questions")
	assert.Equal(t, "mcq-list", fp.got.Schema.Name)
	assert.Equal(t, 512, fp.got.MaxTokens)
	assert.NotContains(t, fp.got.System, "NCERT")
}

func TestGenerateMCQRecordsCallInfo(t *testing.T) {
	fp := &fakeProvider{resp: &llm.Response{
		Content:    json.RawMessage(`{}`),
		Usage:      llm.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		StopReason: "stop",
	}}
	e := NewWithFactory("groq", func(context.Context, llm.Settings) (llm.Provider, error) { return fp, nil })

	ctx, info := engine.WithCallInfo(context.Background())
	_, err := e.GenerateMCQ(ctx, params())
	require.NoError(t, err)

	assert.Equal(t, engine.CallInfo{Model: "fake", StopReason: "stop", InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, *info)

	fp.resp.Model = "llama3-70b-8192-0613"
	_, err = e.GenerateMCQ(ctx, params())
	require.NoError(t, err)
	assert.Equal(t, "llama3-70b-8192-0613", info.Model)

	// no CallInfo attached
	_, err = e.GenerateMCQ(context.Background(), params())
	require.NoError(t, err)
}

func TestGenerateMCQAddsNCERTAlignment(t *testing.T) {
	fp := &fakeProvider{resp: &llm.Response{Content: json.RawMessage(`{}`)}}
	e := NewWithFactory("groq", func(context.Context, llm.Settings) (llm.Provider, error) { return fp, nil })

	p := params()
	p.IsNCERT = true
	_, err := e.GenerateMCQ(context.Background(), p)
	require.NoError(t, err)

	assert.Contains(t, fp.got.System, "NCERT curriculum for grade 10 Math")
}

func TestGenerateMCQWithoutKeyIsMisconfigured(t *testing.T) {
	called := false
	e := NewWithFactory("groq", func(context.Context, llm.Settings) (llm.Provider, error) {
		called = true
		return nil, nil
	})

	p := params()
	p.LLM.APIKey = ""
	_, err := e.GenerateMCQ(context.Background(), p)

	var ge *engine.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, engine.CodeMisconfigured, ge.Code)
	assert.ErrorIs(t, err, llm.ErrMissingCredential)
	assert.False(t, called)
}

func TestGenerateMCQClassifiesProviderErrors(t *testing.T) {
	cases := map[engine.Code]error{
		engine.CodeAuth:          &llm.ErrAuth{Err: errors.New("401")},
		engine.CodeRateLimited:   &llm.ErrRateLimit{Err: errors.New("429")},
		engine.CodeInvalidOutput: &llm.ErrInvalidResponse{Err: errors.New("bad json")},
		engine.CodeUnavailable:   &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")},
		engine.CodeMisconfigured: &llm.ErrRequestRejected{Status: 404, Err: errors.New("model not found")},
		engine.CodeCanceled:      context.DeadlineExceeded,
		engine.CodeFailed:        &llm.ErrRequestRejected{Status: 400, Err: errors.New("context length exceeded")},
	}
	for want, provErr := range cases {
		fp := &fakeProvider{err: provErr}
		e := NewWithFactory("groq", func(context.Context, llm.Settings) (llm.Provider, error) { return fp, nil })

		_, err := e.GenerateMCQ(context.Background(), params())

		var ge *engine.GenerationError
		require.True(t, errors.As(err, &ge), "%v", provErr)
		assert.Equal(t, want, ge.Code)
		assert.Equal(t, provErr.Error(), err.Error())
	}
}

func TestGenerateMCQUnclassifiedErrorFails(t *testing.T) {
	provErr := errors.New("something else")
	fp := &fakeProvider{err: provErr}
	e := NewWithFactory("groq", func(context.Context, llm.Settings) (llm.Provider, error) { return fp, nil })

	_, err := e.GenerateMCQ(context.Background(), params())

	var ge *engine.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, engine.CodeFailed, ge.Code)
	assert.Equal(t, "something else", err.Error())
}
