// AI generation HTTP handlers.
//
// This file exposes the five generation endpoints consumed by the web client:
//   - POST /api/ai/plan/{user_id}      (study plan)
//   - POST /api/ai/todo/{user_id}      (daily todo list)
//   - POST /api/ai/analysis/{user_id}  (progress analysis)
//   - POST /api/ai/advice/{user_id}    (study advice)
//   - POST /api/ai/goals/{user_id}     (goal suggestions)
//
// Handlers are transport-thin: they validate input, call the AI service, and
// translate results into HTTP responses. Idempotent replays are served here
// from the stored response body without touching the service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/choibenassist/go-ai-backend/internal/domain"
	"github.com/choibenassist/go-ai-backend/internal/http/middleware"
	"github.com/choibenassist/go-ai-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AIService defines the generation operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AIService interface {
	// GeneratePlan builds a multi-day study plan for the user.
	GeneratePlan(ctx context.Context, userID string, req domain.PlanRequest) (*domain.PlanResponse, error)
	// GenerateTodo builds a todo list for one study day.
	GenerateTodo(ctx context.Context, userID string, req domain.TodoRequest) (*domain.TodoResponse, error)
	// AnalyzeProgress summarizes the user's recent progress over a period.
	AnalyzeProgress(ctx context.Context, userID string, req domain.AnalysisRequest) (*domain.AnalysisResponse, error)
	// GiveAdvice produces advice for the user's stated challenge.
	GiveAdvice(ctx context.Context, userID string, req domain.AdviceRequest) (*domain.AdviceResponse, error)
	// SuggestGoals proposes learning goals for the user.
	SuggestGoals(ctx context.Context, userID string, req domain.GoalsRequest) (*domain.GoalsResponse, error)
}

// IdempotencyStore persists successful responses keyed by
// (user, feature kind, idempotency key) so retries replay the same payload.
type IdempotencyStore interface {
	// Get returns the stored body and status for a non-expired entry.
	Get(ctx context.Context, userID, kind, key string, now time.Time) (body string, status int, err error)
	// Put stores a successful response. Duplicate keys are not an error.
	Put(ctx context.Context, userID, kind, key, body string, status int) error
}

//
// Handler wiring
//

// AIHandlers groups the generation endpoints. It depends on abstract
// interfaces to keep transport concerns separate from business logic.
type AIHandlers struct {
	svc  AIService
	idem IdempotencyStore
}

// NewAIHandlers constructs handlers bound to the given service and
// idempotency store. The store may be nil to disable replay support.
func NewAIHandlers(svc AIService, idem IdempotencyStore) *AIHandlers {
	return &AIHandlers{svc: svc, idem: idem}
}

//
// Helpers
//

// bindUser validates the user_id path parameter. A well-formed UUID is
// required before any backend call happens.
func bindUser(c *gin.Context) (string, bool) {
	uid := c.Param("user_id")
	if _, err := uuid.Parse(uid); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "user_id must be a UUID")
		return "", false
	}
	return uid, true
}

// serveReplay serves a previously stored response for this request's
// idempotency key, if one exists. Returns true when the request was handled.
func (h *AIHandlers) serveReplay(c *gin.Context, userID string, kind domain.FeatureKind) bool {
	if h.idem == nil || !middleware.IsReplay(c) {
		return false
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return false
	}
	body, status, err := h.idem.Get(c.Request.Context(), userID, kind.String(), key, time.Now().UTC())
	if err != nil {
		// The entry expired between middleware and handler; fall through to
		// a fresh generation.
		return false
	}
	middleware.ObserveGeneration(kind.String(), "replay", 0)
	c.Data(status, "application/json; charset=utf-8", []byte(body))
	return true
}

// finish maps the service result to an HTTP response and, when an
// idempotency key is present, persists the body for future replays.
func (h *AIHandlers) finish(c *gin.Context, userID string, kind domain.FeatureKind, started time.Time, payload any, err error) {
	elapsed := time.Since(started)
	if err != nil {
		status, code, msg := mapServiceError(err)
		middleware.ObserveGeneration(kind.String(), code, elapsed)
		fail(c, status, code, msg)
		return
	}

	middleware.ObserveGeneration(kind.String(), "ok", elapsed)

	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey && h.idem != nil {
		if raw, merr := json.Marshal(payload); merr == nil {
			// Best effort; a store failure must not fail the request.
			if perr := h.idem.Put(c.Request.Context(), userID, kind.String(), key, string(raw), http.StatusOK); perr != nil {
				middleware.LoggerFrom(c).Warn().Err(perr).Msg("idempotency store failed")
			}
		}
	}

	ok(c, http.StatusOK, payload)
}

// mapServiceError translates service-layer sentinels into wire codes.
func mapServiceError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "user profile not found"
	case errors.Is(err, services.ErrInvalidModelOutput):
		return http.StatusBadGateway, ErrCodeInvalidModelOutput, "model returned unusable output"
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return http.StatusBadGateway, ErrCodeUpstreamUnavailable, "upstream service unavailable"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "internal server error"
	}
}

//
// Handlers
//

// GeneratePlan godoc
// @ID          generatePlan
// @Summary     Generate a study plan
// @Description Builds a personalized multi-day study plan from the user's profile, recent records, and active goals.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       user_id          path    string  true   "User ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string  false  "Replay previous result for the same key"
// @Param       body             body    domain.PlanRequest  true  "Plan parameters"
//
// @Success     200  {object}  domain.PlanResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid bearer token"
// @Failure     404  {object}  handlers.ErrorResponse  "User profile not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream or model failure"
// @Router      /api/ai/plan/{user_id} [post]
func (h *AIHandlers) GeneratePlan(c *gin.Context) {
	uid, valid := bindUser(c)
	if !valid {
		return
	}
	var req domain.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "invalid plan request: "+err.Error())
		return
	}
	if h.serveReplay(c, uid, domain.KindPlan) {
		return
	}
	started := time.Now()
	resp, err := h.svc.GeneratePlan(c.Request.Context(), uid, req)
	h.finish(c, uid, domain.KindPlan, started, resp, err)
}

// GenerateTodo godoc
// @ID          generateTodo
// @Summary     Generate a daily todo list
// @Description Builds a todo list for one study day from the user's recent records.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       user_id          path    string  true   "User ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string  false  "Replay previous result for the same key"
// @Param       body             body    domain.TodoRequest  true  "Todo parameters"
//
// @Success     200  {object}  domain.TodoResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid bearer token"
// @Failure     404  {object}  handlers.ErrorResponse  "User profile not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream or model failure"
// @Router      /api/ai/todo/{user_id} [post]
func (h *AIHandlers) GenerateTodo(c *gin.Context) {
	uid, valid := bindUser(c)
	if !valid {
		return
	}
	var req domain.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "invalid todo request: "+err.Error())
		return
	}
	if h.serveReplay(c, uid, domain.KindTodo) {
		return
	}
	started := time.Now()
	resp, err := h.svc.GenerateTodo(c.Request.Context(), uid, req)
	h.finish(c, uid, domain.KindTodo, started, resp, err)
}

// AnalyzeProgress godoc
// @ID          analyzeProgress
// @Summary     Analyze learning progress
// @Description Summarizes the user's progress over a daily, weekly, or monthly period.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       user_id          path    string  true   "User ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string  false  "Replay previous result for the same key"
// @Param       body             body    domain.AnalysisRequest  true  "Analysis parameters"
//
// @Success     200  {object}  domain.AnalysisResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid bearer token"
// @Failure     404  {object}  handlers.ErrorResponse  "User profile not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream or model failure"
// @Router      /api/ai/analysis/{user_id} [post]
func (h *AIHandlers) AnalyzeProgress(c *gin.Context) {
	uid, valid := bindUser(c)
	if !valid {
		return
	}
	var req domain.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "invalid analysis request: "+err.Error())
		return
	}
	if h.serveReplay(c, uid, domain.KindAnalysis) {
		return
	}
	started := time.Now()
	resp, err := h.svc.AnalyzeProgress(c.Request.Context(), uid, req)
	h.finish(c, uid, domain.KindAnalysis, started, resp, err)
}

// GiveAdvice godoc
// @ID          giveAdvice
// @Summary     Get study advice
// @Description Produces advice and action items for the user's stated challenge.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       user_id          path    string  true   "User ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string  false  "Replay previous result for the same key"
// @Param       body             body    domain.AdviceRequest  true  "Advice parameters"
//
// @Success     200  {object}  domain.AdviceResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid bearer token"
// @Failure     404  {object}  handlers.ErrorResponse  "User profile not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream or model failure"
// @Router      /api/ai/advice/{user_id} [post]
func (h *AIHandlers) GiveAdvice(c *gin.Context) {
	uid, valid := bindUser(c)
	if !valid {
		return
	}
	var req domain.AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "invalid advice request: "+err.Error())
		return
	}
	if h.serveReplay(c, uid, domain.KindAdvice) {
		return
	}
	started := time.Now()
	resp, err := h.svc.GiveAdvice(c.Request.Context(), uid, req)
	h.finish(c, uid, domain.KindAdvice, started, resp, err)
}

// SuggestGoals godoc
// @ID          suggestGoals
// @Summary     Suggest learning goals
// @Description Proposes short or long term learning goals from the user's active goals and profile.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       user_id          path    string  true   "User ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string  false  "Replay previous result for the same key"
// @Param       body             body    domain.GoalsRequest  true  "Goal parameters"
//
// @Success     200  {object}  domain.GoalsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid bearer token"
// @Failure     404  {object}  handlers.ErrorResponse  "User profile not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream or model failure"
// @Router      /api/ai/goals/{user_id} [post]
func (h *AIHandlers) SuggestGoals(c *gin.Context) {
	uid, valid := bindUser(c)
	if !valid {
		return
	}
	var req domain.GoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "invalid goals request: "+err.Error())
		return
	}
	if h.serveReplay(c, uid, domain.KindGoals) {
		return
	}
	started := time.Now()
	resp, err := h.svc.SuggestGoals(c.Request.Context(), uid, req)
	h.finish(c, uid, domain.KindGoals, started, resp, err)
}
