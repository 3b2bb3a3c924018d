package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/config"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine/registry"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/gateway"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/httpapi"
	"github.com/yungbote/neurobridge-edugen/internal/observability"
	"github.com/yungbote/neurobridge-edugen/internal/platform/logger"
)

type App struct {
	Log     *logger.Logger
	Config  *config.Config
	Gateway *gateway.Gateway
	Metrics *observability.Metrics

	server       *http.Server
	otelShutdown func(context.Context) error
}

// NewWithConfig wires the service from an already loaded config.
func NewWithConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Telemetry.Version,
	})

	var metrics *observability.Metrics
	if cfg.HTTP.EnableMetrics {
		metrics = observability.NewMetrics()
	}

	eng, err := registry.New(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}
	if !cfg.HasCredential() {
		log.Warn("no API key configured; generation requests will fail until one is set",
			"engine", cfg.Engine.Type,
		)
	}

	gw := gateway.New(cfg, eng, log, metrics)
	srv := httpapi.NewServer(httpapi.RouterConfig{
		Config:  cfg,
		Log:     log,
		Gen:     gw,
		Metrics: metrics,
	})

	log.Info("edugen configured",
		"env", cfg.Env,
		"engine", eng.Name(),
		"model", cfg.Engine.Model,
		"addr", cfg.HTTP.Addr,
	)

	return &App{
		Log:          log,
		Config:       cfg,
		Gateway:      gw,
		Metrics:      metrics,
		server:       srv,
		otelShutdown: shutdown,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler { return a.server.Handler }

// Run serves until ctx is canceled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	a.Log.Info("http server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout)
		defer cancel()
		a.Log.Info("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.Log.Warn("http shutdown incomplete", "error", err)
		}
		a.close(shutdownCtx)
		return nil
	case err := <-errCh:
		a.close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) close(ctx context.Context) {
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
