package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/choibenassist/go-ai-backend/internal/domain"
	"github.com/choibenassist/go-ai-backend/internal/http/middleware"
	"github.com/choibenassist/go-ai-backend/internal/services"
)

const handlerTestUser = "4f8a2c1e-9b3d-4e6f-8a7b-1c2d3e4f5a6b"

// stubService satisfies AIService with canned results and call counting.
type stubService struct {
	plan  *domain.PlanResponse
	err   error
	calls int
}

func (s *stubService) GeneratePlan(ctx context.Context, userID string, req domain.PlanRequest) (*domain.PlanResponse, error) {
	s.calls++
	return s.plan, s.err
}

func (s *stubService) GenerateTodo(ctx context.Context, userID string, req domain.TodoRequest) (*domain.TodoResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TodoResponse{Date: req.Date, MotivationalMessage: "続けましょう"}, nil
}

func (s *stubService) AnalyzeProgress(ctx context.Context, userID string, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.AnalysisResponse{Period: req.Period}, nil
}

func (s *stubService) GiveAdvice(ctx context.Context, userID string, req domain.AdviceRequest) (*domain.AdviceResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.AdviceResponse{AdviceText: "毎日少しずつ", ActionItems: []string{"復習する"}}, nil
}

func (s *stubService) SuggestGoals(ctx context.Context, userID string, req domain.GoalsRequest) (*domain.GoalsResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.GoalsResponse{Rationale: "基礎固め"}, nil
}

// memStore is an in-memory IdempotencyStore.
type memStore struct {
	entries map[string]string
}

func newMemStore() *memStore { return &memStore{entries: map[string]string{}} }

func (m *memStore) storeKey(userID, kind, key string) string {
	return userID + "|" + kind + "|" + key
}

func (m *memStore) Get(ctx context.Context, userID, kind, key string, now time.Time) (string, int, error) {
	body, ok := m.entries[m.storeKey(userID, kind, key)]
	if !ok {
		return "", 0, errors.New("not found")
	}
	return body, http.StatusOK, nil
}

func (m *memStore) Put(ctx context.Context, userID, kind, key, body string, status int) error {
	k := m.storeKey(userID, kind, key)
	if _, ok := m.entries[k]; !ok {
		m.entries[k] = body
	}
	return nil
}

func (m *memStore) exists(ctx context.Context, userID, kind, key string, now time.Time) (bool, error) {
	_, ok := m.entries[m.storeKey(userID, kind, key)]
	return ok, nil
}

func aiEngine(svc AIService, store *memStore) http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	var lookup middleware.IdempotencyLookup
	if store != nil {
		lookup = store.exists
	}
	r.Use(middleware.IdempotencyValidator(lookup))

	var h *AIHandlers
	if store != nil {
		h = NewAIHandlers(svc, store)
	} else {
		h = NewAIHandlers(svc, nil)
	}
	g := r.Group("/api/ai")
	g.POST("/plan/:user_id", h.GeneratePlan)
	g.POST("/todo/:user_id", h.GenerateTodo)
	g.POST("/analysis/:user_id", h.AnalyzeProgress)
	g.POST("/advice/:user_id", h.GiveAdvice)
	g.POST("/goals/:user_id", h.SuggestGoals)
	return r
}

func postJSON(h http.Handler, path, body, idemKey string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set(middleware.HeaderIdempotencyKey, idemKey)
	}
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestGeneratePlan_Success(t *testing.T) {
	svc := &stubService{plan: &domain.PlanResponse{
		Subject:    "数学",
		Summary:    "二次関数を集中的に",
		DailyTasks: []domain.PlanTask{{Day: 1, Title: "復習", Description: "教科書3章", EstimatedTime: 60}},
	}}
	h := aiEngine(svc, nil)

	w := postJSON(h, "/api/ai/plan/"+handlerTestUser, `{"subject":"数学"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	var resp domain.PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Subject != "数学" || len(resp.DailyTasks) != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if svc.calls != 1 {
		t.Errorf("calls = %d", svc.calls)
	}
}

func TestGeneratePlan_RejectsNonUUIDUser(t *testing.T) {
	svc := &stubService{}
	w := postJSON(aiEngine(svc, nil), "/api/ai/plan/not-a-uuid", `{"subject":"数学"}`, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", w.Code)
	}
	if e := decodeError(t, w); e.Code != ErrCodeValidation {
		t.Errorf("error = %q", e.Code)
	}
	if svc.calls != 0 {
		t.Error("service called on invalid user id")
	}
}

func TestGeneratePlan_RejectsBadBody(t *testing.T) {
	svc := &stubService{}
	h := aiEngine(svc, nil)
	for _, body := range []string{``, `{}`, `{"subject":""}`, `{"subject":"数学","difficulty_level":"extreme"}`} {
		w := postJSON(h, "/api/ai/plan/"+handlerTestUser, body, "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %q: code %d", body, w.Code)
		}
	}
	if svc.calls != 0 {
		t.Error("service called on invalid body")
	}
}

func TestHandlers_MapServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user missing", services.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"model garbage", services.ErrInvalidModelOutput, http.StatusBadGateway, ErrCodeInvalidModelOutput},
		{"backend down", services.ErrUpstreamUnavailable, http.StatusBadGateway, ErrCodeUpstreamUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := aiEngine(&stubService{err: tc.err}, nil)
			w := postJSON(h, "/api/ai/advice/"+handlerTestUser, `{"current_challenge":"集中できない"}`, "")
			if w.Code != tc.wantStatus {
				t.Fatalf("code = %d", w.Code)
			}
			e := decodeError(t, w)
			if e.Code != tc.wantCode {
				t.Errorf("error = %q, want %q", e.Code, tc.wantCode)
			}
			if e.RequestID == "" {
				t.Error("request_id missing")
			}
		})
	}
}

func TestGenerateTodo_IdempotentReplay(t *testing.T) {
	svc := &stubService{}
	store := newMemStore()
	h := aiEngine(svc, store)

	first := postJSON(h, "/api/ai/todo/"+handlerTestUser, `{"available_time":60}`, "retry-key-1")
	if first.Code != http.StatusOK {
		t.Fatalf("first code = %d", first.Code)
	}
	if svc.calls != 1 {
		t.Fatalf("calls = %d", svc.calls)
	}

	second := postJSON(h, "/api/ai/todo/"+handlerTestUser, `{"available_time":60}`, "retry-key-1")
	if second.Code != http.StatusOK {
		t.Fatalf("second code = %d", second.Code)
	}
	if svc.calls != 1 {
		t.Errorf("replay hit the service, calls = %d", svc.calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("replay body differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if ct := second.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("replay content type = %q", ct)
	}
}

func TestGenerateTodo_DistinctKeysGenerateFresh(t *testing.T) {
	svc := &stubService{}
	store := newMemStore()
	h := aiEngine(svc, store)

	postJSON(h, "/api/ai/todo/"+handlerTestUser, `{"available_time":60}`, "key-a")
	postJSON(h, "/api/ai/todo/"+handlerTestUser, `{"available_time":60}`, "key-b")
	if svc.calls != 2 {
		t.Errorf("calls = %d", svc.calls)
	}
}

func TestFailures_AreNotStoredForReplay(t *testing.T) {
	store := newMemStore()
	h := aiEngine(&stubService{err: services.ErrUpstreamUnavailable}, store)

	postJSON(h, "/api/ai/goals/"+handlerTestUser, `{"goal_type":"short_term"}`, "key-fail")
	if len(store.entries) != 0 {
		t.Errorf("failure stored: %v", store.entries)
	}
}
