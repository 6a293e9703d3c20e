package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/choibenassist/go-ai-backend/internal/config"
)

func testLLMConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		APIKey:   "test-key",
		Endpoint: endpoint,
		Model:    "gemini-2.0-flash",
		Timeout:  5 * time.Second,
		RPS:      1000, // no throttling in tests
		Burst:    1000,
	}
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateBody(`{"ok":true}`)))
	}))
	defer srv.Close()

	c := NewClient(testLLMConfig(srv.URL))
	text, err := c.Generate(context.Background(), "make a plan")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != `{"ok":true}` {
		t.Fatalf("text = %q", text)
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-2.0-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "make a plan" {
		t.Errorf("request body: %+v", gotReq)
	}
	if gotReq.Config == nil || gotReq.Config.ResponseMimeType != "application/json" {
		t.Errorf("generation config: %+v", gotReq.Config)
	}
}

func TestGenerate_QuotaCarriesRetryHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"details":[{"retryDelay":"9s"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(testLLMConfig(srv.URL))
	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrQuota) {
		t.Fatalf("want ErrQuota, got %v", err)
	}
	var qe *QuotaError
	if !errors.As(err, &qe) {
		t.Fatalf("want *QuotaError, got %T", err)
	}
	if qe.RetryAfter != 9*time.Second {
		t.Errorf("RetryAfter = %v", qe.RetryAfter)
	}
}

func TestGenerate_ServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testLLMConfig(srv.URL))
	if _, err := c.Generate(context.Background(), "p"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestGenerate_EmptyCandidatesIsInvalidOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testLLMConfig(srv.URL))
	if _, err := c.Generate(context.Background(), "p"); !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("want ErrInvalidOutput, got %v", err)
	}
}

func TestGenerate_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testLLMConfig(srv.URL))
	for i := 0; i < 5; i++ {
		if _, err := c.Generate(context.Background(), "p"); err == nil {
			t.Fatal("expected failure")
		}
	}
	callsBefore := calls
	// Breaker is open now; the next call must not reach the server.
	if _, err := c.Generate(context.Background(), "p"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
	if calls != callsBefore {
		t.Fatalf("open breaker still forwarded the call (%d -> %d)", callsBefore, calls)
	}
}
