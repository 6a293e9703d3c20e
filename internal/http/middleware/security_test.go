package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func securityEngine(opt SecurityOptions) http.Handler {
	r := newTestEngine()
	r.Use(RequestID(), SecurityHeaders(opt))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	w := httptest.NewRecorder()
	securityEngine(SecurityOptions{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("nosniff missing")
	}
	if h.Get("X-Frame-Options") != "DENY" {
		t.Error("frame options missing")
	}
	if h.Get("Referrer-Policy") != "no-referrer" {
		t.Error("referrer policy missing")
	}
	if h.Get("Permissions-Policy") != "" {
		t.Error("policy emitted without EnablePolicy")
	}
	if h.Get("Cache-Control") != "" {
		t.Error("no-store emitted without NoStore")
	}
}

func TestSecurityHeaders_NoStore(t *testing.T) {
	w := httptest.NewRecorder()
	securityEngine(SecurityOptions{NoStore: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	h := w.Header()
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Errorf("no-store trio = %q / %q / %q", h.Get("Cache-Control"), h.Get("Pragma"), h.Get("Expires"))
	}
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	eng := securityEngine(SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour})

	w := httptest.NewRecorder()
	eng.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS emitted over plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	eng.ServeHTTP(w, req)
	got := w.Header().Get("Strict-Transport-Security")
	if !strings.Contains(got, "max-age=3600") {
		t.Errorf("HSTS = %q", got)
	}
}

func TestSecurityHeaders_ExposesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	securityEngine(SecurityOptions{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "X-Request-ID") {
		t.Errorf("expose headers = %q", got)
	}
}
