package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/config"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/observability"
	"github.com/yungbote/neurobridge-edugen/internal/platform/logger"
)

type RouterConfig struct {
	Config  *config.Config
	Log     *logger.Logger
	Gen     Generator
	Metrics *observability.Metrics
}

func NewServer(rc RouterConfig) *http.Server {
	cfg := rc.Config
	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           NewRouter(rc),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		WriteTimeout:      0,
	}
}

func NewRouter(rc RouterConfig) *gin.Engine {
	cfg := rc.Config
	log := rc.Log
	if log == nil {
		log = logger.NewNop()
	}

	binding.Validator = contract.Validator()

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(recovery(log))
	r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	r.Use(attachTraceContext())
	r.Use(requestLogger(log))
	if cfg.HTTP.EnableMetrics {
		r.Use(requestMetrics(rc.Metrics))
	}
	if mw := corsMiddleware(cfg.HTTP.CORSOrigins); mw != nil {
		r.Use(mw)
	}
	r.Use(limitBody(cfg.HTTP.MaxRequestBytes))

	h := &handlers{gen: rc.Gen, exposeDetail: cfg.HTTP.ExposeErrorDetail}

	r.GET("/", h.root)
	r.POST("/generate-mcq", h.generateMCQ)
	r.POST("/generate-lesson-plan", h.generateLessonPlan)

	r.GET("/healthz", handleHealthz)
	r.GET("/readyz", handleReadyz)
	if cfg.HTTP.EnableMetrics && rc.Metrics != nil {
		r.GET("/metrics", gin.WrapH(rc.Metrics.Handler()))
	}

	r.NoRoute(handleNoRoute)
	r.NoMethod(handleNoMethod)

	return r
}
