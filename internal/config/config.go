// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, upstream credentials (LLM provider and
// data backend), rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/choibenassist/go-ai-backend/internal/sysutil"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-ai-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// LLMConfig defines settings for the hosted LLM provider.
type LLMConfig struct {
	APIKey   string        // LLM_API_KEY (required)
	Endpoint string        // LLM_ENDPOINT (generateContent base URL)
	Model    string        // LLM_MODEL
	Timeout  time.Duration // LLM_TIMEOUT per generate call
	RPS      float64       // LLM_RPS outbound throttle (tokens/sec)
	Burst    int           // LLM_BURST outbound throttle burst
}

// DataBackendConfig defines settings for the hosted Postgres REST API that
// owns the learning records, profiles, and goals.
type DataBackendConfig struct {
	URL     string        // DATA_BACKEND_URL (required)
	APIKey  string        // DATA_BACKEND_KEY (required)
	Timeout time.Duration // DATA_BACKEND_TIMEOUT per fetch
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 60s (LLM calls are slow)
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	Debug          bool   // DEBUG: pretty console logs
	SwaggerEnabled bool   // enable Swagger UI route

	// Auth
	APISecretKey string // API_SECRET_KEY: shared bearer secret (required)

	// Rate limiting (inbound, fixed window per identity)
	RateLimitPerMinute int // RATE_LIMIT_PER_MINUTE (>= 1)

	// App
	DBPath       string // SQLite path for the generation audit log
	PromptLocale string // BCP-47 tag for prompt templates (default "ja")

	// Upstreams
	LLM         LLMConfig
	DataBackend DataBackendConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		Debug:          getbool("DEBUG", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),

		// Auth
		APISecretKey: getenv("API_SECRET_KEY", ""),

		// Rate limiting
		RateLimitPerMinute: getint("RATE_LIMIT_PER_MINUTE", 100),

		// App
		DBPath:       getenv("DB_PATH", "app.db"),
		PromptLocale: getenv("PROMPT_LOCALE", "ja"),

		// Upstreams
		LLM: LLMConfig{
			APIKey:   getenv("LLM_API_KEY", ""),
			Endpoint: getenv("LLM_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
			Model:    getenv("LLM_MODEL", "gemini-2.0-flash"),
			Timeout:  getdur("LLM_TIMEOUT", 30*time.Second),
			RPS:      getfloat("LLM_RPS", 2.0),
			Burst:    getint("LLM_BURST", 4),
		},
		DataBackend: DataBackendConfig{
			URL:     getenv("DATA_BACKEND_URL", ""),
			APIKey:  getenv("DATA_BACKEND_KEY", ""),
			Timeout: getdur("DATA_BACKEND_TIMEOUT", 10*time.Second),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-ai-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	cfg.DataBackend.URL = strings.TrimRight(strings.TrimSpace(cfg.DataBackend.URL), "/")
	cfg.LLM.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.LLM.Endpoint), "/")

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.APISecretKey) == "" {
		return cfg, errors.New("API_SECRET_KEY must not be empty")
	}
	if cfg.RateLimitPerMinute < 1 {
		return cfg, errors.New("RATE_LIMIT_PER_MINUTE must be >= 1")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return cfg, errors.New("LLM_API_KEY must not be empty")
	}
	if cfg.LLM.Timeout <= 0 {
		return cfg, errors.New("LLM_TIMEOUT must be > 0")
	}
	if cfg.LLM.RPS <= 0 {
		return cfg, errors.New("LLM_RPS must be > 0")
	}
	if cfg.LLM.Burst < 1 {
		return cfg, errors.New("LLM_BURST must be >= 1")
	}
	if cfg.DataBackend.URL == "" {
		return cfg, errors.New("DATA_BACKEND_URL must not be empty")
	}
	if strings.TrimSpace(cfg.DataBackend.APIKey) == "" {
		return cfg, errors.New("DATA_BACKEND_KEY must not be empty")
	}
	if cfg.DataBackend.Timeout <= 0 {
		return cfg, errors.New("DATA_BACKEND_TIMEOUT must be > 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- env helpers ----

func getenv(k, def string) string {
	return sysutil.FirstNonEmpty(os.Getenv(k), def)
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if sysutil.IsTruthy(v) {
			return true
		}
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
