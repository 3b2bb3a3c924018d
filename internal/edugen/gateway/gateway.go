// Package gateway turns validated requests into exactly one engine call.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/config"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine/registry"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/prompt"
	"github.com/yungbote/neurobridge-edugen/internal/observability"
	"github.com/yungbote/neurobridge-edugen/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-edugen/internal/platform/logger"
)

// ErrNotImplemented is returned for contracts that are accepted but have
// no generation behavior yet.
var ErrNotImplemented = errors.New("lesson plan generation is not implemented")

type Gateway struct {
	engine  engine.Engine
	llm     engine.LLMConfig
	timeout time.Duration

	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// New captures the engine selection from cfg. cfg is not retained.
func New(cfg *config.Config, eng engine.Engine, log *logger.Logger, metrics *observability.Metrics) *Gateway {
	if log == nil {
		log = logger.NewNop()
	}
	return &Gateway{
		engine:  eng,
		llm:     registry.LLMConfig(cfg.Engine),
		timeout: cfg.Engine.Timeout,
		log:     log,
		metrics: metrics,
		tracer:  observability.Tracer(),
	}
}

// GenerateMCQ composes the instructions for req and forwards them to the
// engine once. req must already be valid. The result is returned
// unchanged; any failure comes back as *engine.GenerationError.
func (g *Gateway) GenerateMCQ(ctx context.Context, req contract.MCQRequest) (json.RawMessage, error) {
	params := engine.MCQParams{
		Topic:        req.Topic,
		Num:          req.NumberOfQuestions,
		Subject:      req.Subject,
		Grade:        req.Grade,
		Instructions: prompt.MCQInstructions(req.Topic, req.Subtopic, req.Subject, req.Grade, req.NumberOfQuestions, req.CustomInstructions),
		IsNCERT:      req.IsNCERT,
		Subtopic:     req.Subtopic,
		LLM:          g.llm,
	}

	ctx, span := g.tracer.Start(ctx, "edugen.generate_mcq", trace.WithAttributes(
		attribute.String("edugen.engine", g.engine.Name()),
		attribute.String("edugen.subject", req.Subject),
		attribute.String("edugen.grade", req.Grade),
		attribute.Int("edugen.questions", req.NumberOfQuestions),
		attribute.Bool("edugen.ncert", req.IsNCERT),
	))
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	ctx, info := engine.WithCallInfo(ctx)
	start := time.Now()
	out, err := g.engine.GenerateMCQ(ctx, params)
	elapsed := time.Since(start)

	if err != nil {
		ge := engine.Wrap(err)
		g.metrics.ObserveGeneration(g.engine.Name(), string(ge.Code), elapsed)
		span.RecordError(ge)
		span.SetStatus(codes.Error, string(ge.Code))
		g.log.Error("mcq generation failed",
			"request_id", ctxutil.RequestID(ctx),
			"engine", g.engine.Name(),
			"code", ge.Code,
			"duration_ms", elapsed.Milliseconds(),
			"error", ge.Error(),
		)
		return nil, ge
	}

	g.metrics.ObserveGeneration(g.engine.Name(), "ok", elapsed)
	if info.Model != "" {
		span.SetAttributes(
			attribute.String("edugen.model", info.Model),
			attribute.Int("edugen.tokens.input", info.InputTokens),
			attribute.Int("edugen.tokens.output", info.OutputTokens),
		)
	}
	g.log.Debug("mcq generated",
		"request_id", ctxutil.RequestID(ctx),
		"engine", g.engine.Name(),
		"model", info.Model,
		"stop_reason", info.StopReason,
		"usage_input", info.InputTokens,
		"usage_output", info.OutputTokens,
		"usage_total", info.TotalTokens,
		"bytes", len(out),
		"duration_ms", elapsed.Milliseconds(),
	)
	return out, nil
}

// GenerateLessonPlan accepts a validated lesson plan request and reports
// ErrNotImplemented.
func (g *Gateway) GenerateLessonPlan(ctx context.Context, req contract.LessonPlanRequest) (*contract.NCERTLessonPlan, error) {
	g.log.Info("lesson plan requested",
		"request_id", ctxutil.RequestID(ctx),
		"subject", req.Subject,
		"topic", req.Topic,
		"grade", req.Grade,
	)
	return nil, ErrNotImplemented
}
