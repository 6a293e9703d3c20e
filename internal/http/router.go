// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	_ "github.com/choibenassist/go-ai-backend/docs"
	"github.com/choibenassist/go-ai-backend/internal/backend"
	"github.com/choibenassist/go-ai-backend/internal/config"
	"github.com/choibenassist/go-ai-backend/internal/http/handlers"
	"github.com/choibenassist/go-ai-backend/internal/http/middleware"
	"github.com/choibenassist/go-ai-backend/internal/llm"
	"github.com/choibenassist/go-ai-backend/internal/services"
)

// Version is the service version reported by health probes and the root
// banner. Overridable at build time via -ldflags.
var Version = "dev"

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and
// rate limiting, CORS and security headers, health endpoints, and then
// mounts the AI API under /api/ai.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. CORS and Security headers
//
// Idempotency validation and rate limiting apply only to the authenticated
// /api/ai group; health probes never consume an identity's budget.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress responses; generated plans are repetitive JSON
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps
		// tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Dependency injection: services ← adapters/db
	be := backend.NewClient(cfg.DataBackend.URL, cfg.DataBackend.APIKey, cfg.DataBackend.Timeout)
	gen := llm.NewClient(cfg.LLM)
	locale, err := language.Parse(cfg.PromptLocale)
	if err != nil {
		locale = language.Japanese
	}
	aiSvc := services.NewAIService(db, be, gen, locale)
	idemSvc := services.NewIdempotencyService(db, cfg.IdempotencyTTL)

	ai := handlers.NewAIHandlers(aiSvc, idemSvc)
	health := handlers.NewHealthHandlers(db, Version, cfg.LLM.Model, cfg.DataBackend.URL)

	// Root banner for humans poking the base URL
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.OTEL.ServiceName,
			"version": Version,
			"docs":    "/swagger/index.html",
			"health":  "/api/health",
		})
	})

	// Health probes: outside auth and rate limiting
	r.GET("/api/health", health.Health)
	r.GET("/api/health/detailed", health.DetailedHealth)

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Authenticated AI API
	rl := middleware.NewRateLimiter(cfg.RateLimitPerMinute, middleware.KeyByUserOrIP)
	api := r.Group("/api/ai")
	api.Use(middleware.BearerAuth(cfg.APISecretKey))
	api.Use(middleware.IdempotencyValidator(idemSvc.Exists))
	api.Use(rl.Handler())
	{
		api.POST("/plan/:user_id", ai.GeneratePlan)
		api.POST("/todo/:user_id", ai.GenerateTodo)
		api.POST("/analysis/:user_id", ai.AnalyzeProgress)
		api.POST("/advice/:user_id", ai.GiveAdvice)
		api.POST("/goals/:user_id", ai.SuggestGoals)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
