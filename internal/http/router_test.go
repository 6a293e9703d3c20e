package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/choibenassist/go-ai-backend/internal/config"
	"github.com/choibenassist/go-ai-backend/internal/repo"
)

const routerTestSecret = "router-test-secret"

func routerTestConfig() config.Config {
	return config.Config{
		GinMode:            gin.TestMode,
		APISecretKey:       routerTestSecret,
		RateLimitPerMinute: 100,
		PromptLocale:       "ja",
		IdempotencyTTL:     time.Hour,
		LLM: config.LLMConfig{
			APIKey:  "test-key",
			Model:   "gemini-2.0-flash",
			Timeout: time.Second,
			RPS:     10,
			Burst:   10,
		},
		DataBackend: config.DataBackendConfig{
			URL:     "https://example.supabase.co",
			APIKey:  "anon-key",
			Timeout: time.Second,
		},
		OTEL: config.OTELConfig{ServiceName: "go-ai-backend"},
	}
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, routerTestConfig())
	return r
}

func do(h http.Handler, method, path string, hdrs map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdrs {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthNeedsNoAuth(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestRouter_RootBanner(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["service"] != "go-ai-backend" || body["health"] != "/api/health" {
		t.Errorf("banner = %v", body)
	}
}

func TestRouter_AIRoutesRequireBearer(t *testing.T) {
	h := newRouter(t)
	uid := uuid.NewString()
	for _, path := range []string{"/plan/", "/todo/", "/analysis/", "/advice/", "/goals/"} {
		w := do(h, http.MethodPost, "/api/ai"+path+uid, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: code = %d", path, w.Code)
			continue
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != "unauthorized" {
			t.Errorf("%s: error = %v", path, body["error"])
		}
	}
}

func TestRouter_UnknownRouteEnvelope(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "not_found" {
		t.Errorf("error = %v", body["error"])
	}
	if s, _ := body["request_id"].(string); s == "" {
		t.Error("request_id missing")
	}
}

func TestRouter_MethodNotAllowedEnvelope(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/api/ai/plan/"+uuid.NewString(), nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("code = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "method_not_allowed" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRouter_CORSAndRequestIDHeaders(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/api/health", nil)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("ACAO = %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("nosniff = %q", got)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestRouter_SwaggerDisabledByDefault(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/swagger/index.html", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d", w.Code)
	}
}
