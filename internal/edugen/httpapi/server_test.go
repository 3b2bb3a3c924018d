package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/config"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/gateway"
	"github.com/yungbote/neurobridge-edugen/internal/observability"
	"github.com/yungbote/neurobridge-edugen/internal/platform/logger"
)

type countingEngine struct {
	mu    sync.Mutex
	calls []engine.MCQParams
	out   json.RawMessage
	err   error
}

func (e *countingEngine) Name() string { return "counting" }

func (e *countingEngine) GenerateMCQ(_ context.Context, p engine.MCQParams) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, p)
	return e.out, e.err
}

func (e *countingEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

type panicGenerator struct{}

func (panicGenerator) GenerateMCQ(context.Context, contract.MCQRequest) (json.RawMessage, error) {
	panic("boom")
}

func (panicGenerator) GenerateLessonPlan(context.Context, contract.LessonPlanRequest) (*contract.NCERTLessonPlan, error) {
	panic("boom")
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		HTTP: config.HTTPConfig{
			Addr:              ":0",
			MaxRequestBytes:   1 << 20,
			ExposeErrorDetail: true,
			CORSOrigins:       []string{"*"},
			EnableMetrics:     true,
		},
		Engine: config.EngineConfig{
			Type:    config.EngineGroq,
			Model:   config.DefaultGroqModel,
			BaseURL: config.DefaultGroqBaseURL,
			APIKey:  "gsk_test",
		},
		Telemetry: config.TelemetryConfig{ServiceName: "edugen-test"},
	}
}

func testRouter(t *testing.T, cfg *config.Config, eng engine.Engine) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics := observability.NewMetrics()
	return NewRouter(RouterConfig{
		Config:  cfg,
		Log:     logger.NewNop(),
		Gen:     gateway.New(cfg, eng, nil, metrics),
		Metrics: metrics,
	})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const validMCQ = `{"grade":"10","subject":"Math","topic":"Algebra","subtopic":"Linear Equations","isNcert":false,"numberOfQuestions":3,"customInstructions":""}`

func TestRootReturnsLiteralBody(t *testing.T) {
	h := testRouter(t, testConfig(), &countingEngine{})

	rr := do(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Server is running"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(headerRequestID))
}

func TestGenerateMCQPassesResultThrough(t *testing.T) {
	result := `{"questions":[{"question":"Solve 2x=4","options":["1","2","3","4"],"answer":"2"}],"extra":true}`
	eng := &countingEngine{out: json.RawMessage(result)}
	h := testRouter(t, testConfig(), eng)

	rr := do(h, http.MethodPost, "/generate-mcq", validMCQ)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, result, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Equal(t, 1, eng.count())
	got := eng.calls[0]
	assert.Equal(t, "Algebra", got.Topic)
	assert.Equal(t, "Linear Equations", got.Subtopic)
	assert.Equal(t, 3, got.Num)
	assert.False(t, got.IsNCERT)
	assert.True(t, strings.HasPrefix(got.Instructions, "\nGenerate 3 multiple-choice question (MCQ)"))
}

func TestGenerateMCQMissingFieldIs422(t *testing.T) {
	fields := []string{"grade", "subject", "topic", "subtopic", "numberOfQuestions"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			eng := &countingEngine{out: json.RawMessage(`{}`)}
			h := testRouter(t, testConfig(), eng)

			var body map[string]any
			require.NoError(t, json.Unmarshal([]byte(validMCQ), &body))
			delete(body, field)
			raw, _ := json.Marshal(body)

			rr := do(h, http.MethodPost, "/generate-mcq", string(raw))
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

			var out validationBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
			require.Len(t, out.Detail, 1)
			assert.Equal(t, []string{"body", field}, out.Detail[0].Loc)
			assert.Equal(t, "missing", out.Detail[0].Type)
			assert.Zero(t, eng.count())
		})
	}
}

func TestGenerateMCQNonPositiveCountIs422(t *testing.T) {
	eng := &countingEngine{out: json.RawMessage(`{}`)}
	h := testRouter(t, testConfig(), eng)

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1000, 0).Draw(rt, "n")
		body := strings.Replace(validMCQ, `"numberOfQuestions":3`, `"numberOfQuestions":`+jsonInt(n), 1)

		rr := do(h, http.MethodPost, "/generate-mcq", body)
		if rr.Code != http.StatusUnprocessableEntity {
			rt.Fatalf("n=%d status=%d body=%s", n, rr.Code, rr.Body.String())
		}
	})
	assert.Zero(t, eng.count())
}

func TestGenerateMCQAcceptsEmptyPresentStrings(t *testing.T) {
	eng := &countingEngine{out: json.RawMessage(`{"questions":[]}`)}
	h := testRouter(t, testConfig(), eng)

	body := strings.Replace(validMCQ, `"subtopic":"Linear Equations"`, `"subtopic":""`, 1)
	rr := do(h, http.MethodPost, "/generate-mcq", body)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, 1, eng.count())
	assert.Equal(t, "", eng.calls[0].Subtopic)
	assert.Contains(t, eng.calls[0].Instructions, "Subtopic: ")
}

func TestGenerateMCQZeroCountIsOutOfRange(t *testing.T) {
	eng := &countingEngine{out: json.RawMessage(`{}`)}
	h := testRouter(t, testConfig(), eng)

	body := strings.Replace(validMCQ, `"numberOfQuestions":3`, `"numberOfQuestions":0`, 1)
	rr := do(h, http.MethodPost, "/generate-mcq", body)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var out validationBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Detail, 1)
	assert.Equal(t, []string{"body", "numberOfQuestions"}, out.Detail[0].Loc)
	assert.Equal(t, "greater_than_equal", out.Detail[0].Type)
	assert.Zero(t, eng.count())
}

func TestGenerateMCQMalformedBodyIs422(t *testing.T) {
	eng := &countingEngine{}
	h := testRouter(t, testConfig(), eng)

	for name, body := range map[string]string{
		"not json":     `{"grade":`,
		"empty":        "",
		"wrong type":   strings.Replace(validMCQ, `"isNcert":false`, `"isNcert":"no"`, 1),
		"string count": strings.Replace(validMCQ, `"numberOfQuestions":3`, `"numberOfQuestions":"3"`, 1),
	} {
		rr := do(h, http.MethodPost, "/generate-mcq", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, name)
		assert.Contains(t, rr.Body.String(), `"detail":[`, name)
	}
	assert.Zero(t, eng.count())
}

func TestGenerateMCQOversizedBodyIs413(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.MaxRequestBytes = 64
	eng := &countingEngine{}
	h := testRouter(t, cfg, eng)

	body := strings.Replace(validMCQ, `"customInstructions":""`, `"customInstructions":"`+strings.Repeat("x", 256)+`"`, 1)
	rr := do(h, http.MethodPost, "/generate-mcq", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Zero(t, eng.count())
}

func TestGenerateMCQEngineErrorIs500(t *testing.T) {
	eng := &countingEngine{err: errors.New("Error code: 401 - Invalid API Key")}
	h := testRouter(t, testConfig(), eng)

	rr := do(h, http.MethodPost, "/generate-mcq", validMCQ)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var out errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "Error code: 401 - Invalid API Key", out.Detail)
	assert.Equal(t, string(engine.CodeFailed), out.Code)
	assert.Equal(t, rr.Header().Get(headerRequestID), out.RequestID)

	rr = do(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGenerateMCQHidesDetailWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.ExposeErrorDetail = false
	eng := &countingEngine{err: &engine.GenerationError{Code: engine.CodeAuth, Err: errors.New("bad key gsk_abc")}}
	h := testRouter(t, cfg, eng)

	rr := do(h, http.MethodPost, "/generate-mcq", validMCQ)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var out errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, genericGenerationDetail, out.Detail)
	assert.Equal(t, string(engine.CodeAuth), out.Code)
	assert.NotContains(t, rr.Body.String(), "gsk_abc")
}

func TestLessonPlan(t *testing.T) {
	h := testRouter(t, testConfig(), &countingEngine{})

	rr := do(h, http.MethodPost, "/generate-lesson-plan", `{"subject":"Science","topic":"Plants","grade":6,"duration":40}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `"customInstructions"`)

	rr = do(h, http.MethodPost, "/generate-lesson-plan", `{"subject":"Science","topic":"Plants","grade":0,"duration":40,"customInstructions":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var out validationBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Detail, 1)
	assert.Equal(t, []string{"body", "grade"}, out.Detail[0].Loc)
	assert.Equal(t, "greater_than_equal", out.Detail[0].Type)

	for _, body := range []string{
		`{"subject":"Science","topic":"Plants","grade":6,"duration":40,"customInstructions":""}`,
		`{"subject":"Science","topic":"Plants","grade":6,"duration":40,"custom_instructions":""}`,
	} {
		rr = do(h, http.MethodPost, "/generate-lesson-plan", body)
		require.Equal(t, http.StatusNotImplemented, rr.Code, body)
		assert.JSONEq(t, `{"detail":"lesson plan generation is not implemented","code":"not_implemented"}`, rr.Body.String())
	}
}

func TestPanicIsRecovered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewRouter(RouterConfig{Config: testConfig(), Gen: panicGenerator{}})

	rr := do(h, http.MethodPost, "/generate-mcq", validMCQ)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, rr.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	h := testRouter(t, testConfig(), &countingEngine{out: json.RawMessage(`{}`)})

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "ok", rr.Body.String(), path)
	}

	do(h, http.MethodPost, "/generate-mcq", validMCQ)
	rr := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `edugen_generations_total{engine="counting",outcome="ok"} 1`)
	assert.Contains(t, rr.Body.String(), `route="/generate-mcq"`)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := testRouter(t, testConfig(), &countingEngine{})

	rr := do(h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rr.Body.String())

	rr = do(h, http.MethodGet, "/generate-mcq", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCORSAllowedOrigins(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:3000"}
	h := testRouter(t, cfg, &countingEngine{})

	for _, origin := range cfg.HTTP.CORSOrigins {
		req := httptest.NewRequest(http.MethodOptions, "/generate-mcq", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code, origin)
		assert.Equal(t, origin, rr.Header().Get("Access-Control-Allow-Origin"), origin)
	}

	req := httptest.NewRequest(http.MethodOptions, "/generate-mcq", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcard(t *testing.T) {
	h := testRouter(t, testConfig(), &countingEngine{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anything.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
