package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/choibenassist/go-ai-backend/internal/domain"
)

// Adapter-level errors. Raw transport errors never cross this boundary.
var (
	// ErrNotFound indicates the user (or requested rows) do not exist.
	ErrNotFound = errors.New("backend: not found")

	// ErrForbidden indicates the backend rejected our credentials.
	ErrForbidden = errors.New("backend: forbidden")

	// ErrUpstream indicates the backend is unreachable or returned a 5xx.
	ErrUpstream = errors.New("backend: upstream unavailable")
)

// retryBackoff is the pause before the single retry on transient failures.
// Kept short: the caller's context carries the real deadline.
const retryBackoff = 200 * time.Millisecond

// Client talks to the hosted Postgres REST API. It is safe for concurrent
// use; all blocking operations honor the caller's context.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a Client for the given base URL and anon/service key.
// Timeout bounds each HTTP attempt; values <= 0 default to 10s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 10
	transport.MaxIdleConnsPerHost = 5
	transport.IdleConnTimeout = 60 * time.Second
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// FetchProfile returns the learner's profile row or ErrNotFound.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*Profile, error) {
	q := url.Values{}
	q.Set("id", "eq."+userID)
	q.Set("select", "*")

	var rows []Profile
	if err := c.getJSON(ctx, "/rest/v1/user_profiles", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// FetchRecords returns the learner's study records for the last `days` days,
// newest first. An empty result is not an error: a learner with no history is
// still a learner.
func (c *Client) FetchRecords(ctx context.Context, userID string, days int) ([]LearningRecord, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("studied_at", "gte."+since)
	q.Set("order", "studied_at.desc")
	q.Set("select", "*")

	var rows []LearningRecord
	if err := c.getJSON(ctx, "/rest/v1/study_records", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchGoals returns the learner's active goals.
func (c *Client) FetchGoals(ctx context.Context, userID string) ([]LearningGoal, error) {
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("status", "eq.active")
	q.Set("select", "*")

	var rows []LearningGoal
	if err := c.getJSON(ctx, "/rest/v1/learning_goals", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchAnalytics returns the pre-aggregated analytics row for the period, or
// nil when the backend has not aggregated one yet.
func (c *Client) FetchAnalytics(ctx context.Context, userID string, period domain.Period) (*Analytics, error) {
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("period", "eq."+string(period))
	q.Set("select", "*")

	var rows []Analytics
	if err := c.getJSON(ctx, "/rest/v1/learning_analytics", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// AssembleContext fetches the LearningContext subset a feature kind needs.
// The profile fetch doubles as the existence check: every kind resolves the
// user first so a missing learner surfaces as ErrNotFound before any LLM
// spend.
func (c *Client) AssembleContext(ctx context.Context, userID string, kind domain.FeatureKind) (*LearningContext, error) {
	profile, err := c.FetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	lc := &LearningContext{UserID: userID, Profile: profile}

	switch kind {
	case domain.KindPlan:
		if lc.Records, err = c.FetchRecords(ctx, userID, 30); err != nil {
			return nil, err
		}
		if lc.Goals, err = c.FetchGoals(ctx, userID); err != nil {
			return nil, err
		}
	case domain.KindTodo:
		if lc.Records, err = c.FetchRecords(ctx, userID, 7); err != nil {
			return nil, err
		}
	case domain.KindAnalysis:
		if lc.Records, err = c.FetchRecords(ctx, userID, 30); err != nil {
			return nil, err
		}
		if lc.Goals, err = c.FetchGoals(ctx, userID); err != nil {
			return nil, err
		}
		if lc.Analytics, err = c.FetchAnalytics(ctx, userID, domain.PeriodWeekly); err != nil {
			return nil, err
		}
	case domain.KindAdvice:
		if lc.Records, err = c.FetchRecords(ctx, userID, 14); err != nil {
			return nil, err
		}
	case domain.KindGoals:
		if lc.Goals, err = c.FetchGoals(ctx, userID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("backend: unknown feature kind %q", kind)
	}
	return lc, nil
}

// getJSON performs a GET against path with PostgREST-style query params and
// decodes the JSON response into out.
//
// Failure policy: transport errors and 5xx responses are retried exactly once
// after a short backoff; 4xx and malformed payloads propagate immediately.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Debug().Str("path", path).Err(lastErr).Msg("retrying data backend fetch")
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
			}
		}

		retryable, err := c.doOnce(ctx, path, q, out)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// doOnce issues a single attempt and reports whether a failure is retryable.
func (c *Client) doOnce(ctx context.Context, path string, q url.Values, out any) (retryable bool, err error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, ErrForbidden
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return true, fmt.Errorf("%w: http %d: %s", ErrUpstream, resp.StatusCode, body)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("%w: http %d: %s", ErrUpstream, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Malformed payload from the backend is not transient.
		return false, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return false, nil
}
