package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var ErrConfiguration = errors.New("configuration error")

// defaultModels mirrors the provider defaults used when engine.model is empty.
var defaultModels = map[string]string{
	EngineGroq:      DefaultGroqModel,
	EngineOpenAI:    "gpt-4o-mini",
	EngineGemini:    "gemini-2.0-flash",
	EngineAnthropic: "claude-haiku-4-5-20251001",
	EngineMock:      "mock-1",
}

// providerKeyEnv is the conventional env var holding each provider's key.
var providerKeyEnv = map[string]string{
	EngineGroq:      "GROQ_API_KEY",
	EngineOpenAI:    "OPENAI_API_KEY",
	EngineGemini:    "GEMINI_API_KEY",
	EngineAnthropic: "ANTHROPIC_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.read_header_timeout", 5*time.Second)
	v.SetDefault("http.idle_timeout", 2*time.Minute)
	v.SetDefault("http.shutdown_timeout", 15*time.Second)
	v.SetDefault("http.max_request_bytes", int64(1<<20))
	v.SetDefault("http.expose_error_detail", true)
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.enable_metrics", true)

	v.SetDefault("engine.type", EngineGroq)
	v.SetDefault("engine.model", "")
	v.SetDefault("engine.base_url", "")
	v.SetDefault("engine.api_key", "")
	v.SetDefault("engine.timeout", time.Duration(0))
	v.SetDefault("engine.temperature", 0.7)
	v.SetDefault("engine.max_tokens", 4096)

	v.SetDefault("telemetry.service_name", "edugen")
	v.SetDefault("telemetry.version", "dev")
}

// Option adjusts the resolved settings before they are decoded.
type Option func(v *viper.Viper)

// WithOverride pins key (dotted, e.g. "engine.type") to val above every
// other source. Empty strings are ignored so unset CLI flags pass through.
func WithOverride(key string, val any) Option {
	return func(v *viper.Viper) {
		if s, ok := val.(string); ok && strings.TrimSpace(s) == "" {
			return
		}
		v.Set(key, val)
	}
}

// Load resolves configuration from defaults, an optional config file and
// the environment, in increasing precedence:
//
//   - EDUGEN_CONFIG_PATH, or config.{yaml,json} in ./config or .
//   - EDUGEN_* variables (EDUGEN_HTTP_ADDR, EDUGEN_ENGINE_TYPE, ...)
//   - GROQ_API_KEY and friends, PORT, LOG_MODE
//   - opts, e.g. CLI flags
func Load(opts ...Option) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("EDUGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "EDUGEN_ENV", "LOG_MODE")

	if err := readConfigFile(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	for _, opt := range opts {
		opt(v)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrConfiguration, err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv("EDUGEN_HTTP_ADDR") == "" {
		cfg.HTTP.Addr = ":" + port
	}

	normalize(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if p := strings.TrimSpace(os.Getenv("EDUGEN_CONFIG_PATH")); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.Env = strings.TrimSpace(cfg.Env)
	cfg.HTTP.Addr = strings.TrimSpace(cfg.HTTP.Addr)

	e := &cfg.Engine
	e.Type = strings.ToLower(strings.TrimSpace(e.Type))
	if e.Type == "oai_http" {
		e.Type = EngineOpenAI
	}
	e.Model = strings.TrimSpace(e.Model)
	if e.Model == "" {
		e.Model = defaultModels[e.Type]
	}
	e.BaseURL = strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	if e.BaseURL == "" && e.Type == EngineGroq {
		e.BaseURL = DefaultGroqBaseURL
	}
	e.APIKey = strings.TrimSpace(e.APIKey)
	if e.APIKey == "" {
		if name, ok := providerKeyEnv[e.Type]; ok {
			e.APIKey = strings.TrimSpace(os.Getenv(name))
		}
	}

	origins := cfg.HTTP.CORSOrigins[:0]
	for _, o := range cfg.HTTP.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.HTTP.CORSOrigins = origins
}
