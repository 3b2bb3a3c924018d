package config

import "time"

// Engine types understood by engine/registry.
const (
	EngineGroq      = "groq"
	EngineOpenAI    = "openai"
	EngineGemini    = "gemini"
	EngineAnthropic = "anthropic"
	EngineMock      = "mock"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama3-70b-8192"
)

type HTTPConfig struct {
	Addr              string        `mapstructure:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gte=0"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxRequestBytes   int64         `mapstructure:"max_request_bytes" validate:"gt=0"`

	// ExposeErrorDetail puts the raw engine error string into 500 bodies.
	// When off, clients get a generic message plus the request id.
	ExposeErrorDetail bool `mapstructure:"expose_error_detail"`

	CORSOrigins   []string `mapstructure:"cors_origins" validate:"dive,required"`
	EnableMetrics bool     `mapstructure:"enable_metrics"`
}

type EngineConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=groq openai gemini anthropic mock"`

	// Model is the upstream model id. Empty means the per-type default.
	Model string `mapstructure:"model"`

	// BaseURL applies to the OpenAI-compatible engines (groq, openai).
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// APIKey may be empty at startup; engine calls then fail individually.
	APIKey string `mapstructure:"api_key"`

	// Timeout bounds a single engine call. Zero leaves the call unbounded
	// apart from client cancellation.
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int           `mapstructure:"max_tokens" validate:"gte=0"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name" validate:"required"`
	Version     string `mapstructure:"version"`
}

// Config is built once by Load and shared read-only afterwards.
type Config struct {
	Env       string          `mapstructure:"env" validate:"required"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// HasCredential reports whether the selected engine has an API key. The
// mock engine never needs one.
func (c *Config) HasCredential() bool {
	if c.Engine.Type == EngineMock {
		return true
	}
	return c.Engine.APIKey != ""
}
