package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/choibenassist/go-ai-backend/internal/config"
	"github.com/choibenassist/go-ai-backend/internal/utils"
)

// Client calls the Gemini generateContent endpoint. It is safe for concurrent
// use. Two guards wrap every call:
//
//   - a process-wide token bucket that paces outbound calls to stay inside
//     the provider's request-per-second allowance, and
//   - a circuit breaker that short-circuits to ErrUpstream while the provider
//     is failing, so a provider outage does not burn quota on doomed calls.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	throttle   *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[string]
}

// NewClient constructs a Client from the LLM configuration.
func NewClient(cfg config.LLMConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 10
	transport.MaxIdleConnsPerHost = 5
	transport.IdleConnTimeout = 60 * time.Second

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "llm-provider",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		throttle:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker:    breaker,
	}
}

// Model returns the configured model identifier (recorded in the audit log).
func (c *Client) Model() string { return c.model }

// API request/response shapes (minimal for our use).

type generateContentRequest struct {
	Contents []content         `json:"contents"`
	Config   *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	TopK             int     `json:"topK,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"response_mime_type,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single non-streaming generate call and returns the raw
// reply text. Provider failures are already classified: ErrQuota (with a
// retry hint when present), ErrUpstream, or ErrInvalidOutput for an empty
// candidate list. No caching; identical prompts cost identical money.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text, err := c.breaker.Execute(func() (string, error) {
		return c.generateOnce(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit open", ErrUpstream)
		}
		return "", err
	}
	return text, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)

	reqBody := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		// Tuned for fast, bounded replies; creativity is not the point here.
		Config: &generationConfig{
			Temperature:      0.7,
			TopP:             0.8,
			TopK:             40,
			MaxOutputTokens:  1024,
			ResponseMimeType: "application/json",
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", &QuotaError{RetryAfter: parseRetryDelay(string(body))}
		}
		return "", fmt.Errorf("%w: http %d: %s", ErrUpstream, resp.StatusCode, body)
	}

	var gcr generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&gcr); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if len(gcr.Candidates) == 0 || len(gcr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty reply", ErrInvalidOutput)
	}
	return gcr.Candidates[0].Content.Parts[0].Text, nil
}

// retryDelayRE matches the RetryInfo detail Gemini embeds in 429 bodies,
// e.g. "retryDelay": "21s".
var retryDelayRE = regexp.MustCompile(`"retryDelay"\s*:\s*"(\d+)` + `s"`)

// parseRetryDelay extracts a retry hint from a 429 error body; zero when the
// provider gave none.
func parseRetryDelay(body string) time.Duration {
	m := retryDelayRE.FindStringSubmatch(body)
	if len(m) != 2 {
		return 0
	}
	secs := utils.AtoiDefault(m[1], 0)
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
