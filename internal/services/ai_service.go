// Package services – AIService
//
// This file implements the AIService, the straight-line composition behind
// each AI endpoint: fetch the learner's context from the data backend, render
// the feature's prompt, invoke the LLM adapter, and hand back the validated
// payload. Every generation is recorded in the local audit log regardless of
// outcome.
//
// Service-level errors (e.g., ErrUserNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/choibenassist/go-ai-backend/internal/backend"
	"github.com/choibenassist/go-ai-backend/internal/domain"
	"github.com/choibenassist/go-ai-backend/internal/llm"
	"github.com/choibenassist/go-ai-backend/internal/llm/prompts"
	"github.com/choibenassist/go-ai-backend/internal/repo"
	"github.com/choibenassist/go-ai-backend/internal/utils"
)

// ContextFetcher assembles a learner's LearningContext from the data backend.
// Implementations must honor the provided context for cancellation.
type ContextFetcher interface {
	AssembleContext(ctx context.Context, userID string, kind domain.FeatureKind) (*backend.LearningContext, error)
}

// Generator produces raw model text for a prompt. Implementations must honor
// the provided context for cancellation and timeouts.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// AIService provides the five generation features. It holds no per-request
// state and is safe for concurrent use.
type AIService struct {
	// DB is the GORM handle for the generation audit log.
	DB *gorm.DB
	// Backend fetches the learner's context.
	Backend ContextFetcher
	// LLM invokes the hosted model.
	LLM Generator
	// Locale selects the prompt template language.
	Locale language.Tag
}

// NewAIService constructs an AIService with the given collaborators.
func NewAIService(db *gorm.DB, be ContextFetcher, gen Generator, locale language.Tag) *AIService {
	if locale == language.Und {
		locale = language.Japanese
	}
	return &AIService{DB: db, Backend: be, LLM: gen, Locale: locale}
}

// GeneratePlan produces a personalized learning plan.
func (s *AIService) GeneratePlan(ctx context.Context, userID string, req domain.PlanRequest) (*domain.PlanResponse, error) {
	availableTime := req.AvailableTimePerDay
	if availableTime <= 0 {
		availableTime = 60
	}
	payload, err := s.generate(ctx, userID, domain.KindPlan, func(lc *backend.LearningContext) prompts.Data {
		return prompts.Data{
			Subject:        req.Subject,
			TargetDate:     req.TargetDate,
			Difficulty:     req.DifficultyLevel,
			AvailableTime:  availableTime,
			ProfileSummary: profileSummary(lc.Profile),
			RecentProgress: recordsSummary(lc.Records),
			GoalsSummary:   goalsSummary(lc.Goals),
		}
	})
	if err != nil {
		return nil, err
	}
	resp := payload.(*domain.PlanResponse)
	resp.PlanID = uuid.NewString()
	resp.GeneratedAt = time.Now().UTC()
	return resp, nil
}

// GenerateTodo produces today's study to-do list.
func (s *AIService) GenerateTodo(ctx context.Context, userID string, req domain.TodoRequest) (*domain.TodoResponse, error) {
	availableTime := req.AvailableTime
	if availableTime <= 0 {
		availableTime = 120
	}
	payload, err := s.generate(ctx, userID, domain.KindTodo, func(lc *backend.LearningContext) prompts.Data {
		return prompts.Data{
			AvailableTime:  availableTime,
			DailyGoal:      utils.TruncateRunes(req.DailyGoal, maxFreeTextRunes),
			RecentProgress: recordsSummary(lc.Records),
		}
	})
	if err != nil {
		return nil, err
	}
	resp := payload.(*domain.TodoResponse)
	if resp.Date = req.Date; resp.Date == "" {
		resp.Date = time.Now().UTC().Format("2006-01-02")
	}
	return resp, nil
}

// AnalyzeProgress produces a progress analysis for the requested period.
func (s *AIService) AnalyzeProgress(ctx context.Context, userID string, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	payload, err := s.generate(ctx, userID, domain.KindAnalysis, func(lc *backend.LearningContext) prompts.Data {
		records := lc.Records
		if len(req.Subjects) > 0 {
			records = filterBySubjects(records, req.Subjects)
		}
		return prompts.Data{
			Period:         string(req.Period),
			RecentProgress: recordsSummary(records),
			AnalyticsLine:  analyticsLine(lc.Analytics),
			GoalsSummary:   goalsSummary(lc.Goals),
		}
	})
	if err != nil {
		return nil, err
	}
	resp := payload.(*domain.AnalysisResponse)
	resp.UserID = userID
	resp.Period = req.Period
	resp.AnalysisDate = time.Now().UTC()
	return resp, nil
}

// GiveAdvice produces personalized learning advice.
func (s *AIService) GiveAdvice(ctx context.Context, userID string, req domain.AdviceRequest) (*domain.AdviceResponse, error) {
	payload, err := s.generate(ctx, userID, domain.KindAdvice, func(lc *backend.LearningContext) prompts.Data {
		return prompts.Data{
			Challenge:      utils.TruncateRunes(req.CurrentChallenge, maxFreeTextRunes),
			ExtraContext:   utils.TruncateRunes(req.Context, maxFreeTextRunes),
			ProfileSummary: profileSummary(lc.Profile),
			RecentProgress: recordsSummary(lc.Records),
		}
	})
	if err != nil {
		return nil, err
	}
	resp := payload.(*domain.AdviceResponse)
	resp.AdviceID = uuid.NewString()
	resp.GeneratedAt = time.Now().UTC()
	return resp, nil
}

// SuggestGoals produces SMART goal suggestions.
func (s *AIService) SuggestGoals(ctx context.Context, userID string, req domain.GoalsRequest) (*domain.GoalsResponse, error) {
	payload, err := s.generate(ctx, userID, domain.KindGoals, func(lc *backend.LearningContext) prompts.Data {
		currentLevel := req.CurrentLevel
		if currentLevel == "" && lc.Profile != nil {
			currentLevel = lc.Profile.CurrentLevel
		}
		return prompts.Data{
			GoalType:     req.GoalType,
			Subject:      req.Subject,
			CurrentLevel: currentLevel,
			GoalsSummary: goalsSummary(lc.Goals),
		}
	})
	if err != nil {
		return nil, err
	}
	resp := payload.(*domain.GoalsResponse)
	resp.GeneratedAt = time.Now().UTC()
	for i := range resp.Goals {
		resp.Goals[i].GoalID = uuid.NewString()
	}
	return resp, nil
}

// generate runs the shared pipeline: assemble context → build prompt →
// invoke model → parse/validate. The audit row is written for every outcome;
// an audit write failure is logged via the span but never fails the request.
func (s *AIService) generate(ctx context.Context, userID string, kind domain.FeatureKind, dataFn func(*backend.LearningContext) prompts.Data) (domain.AIPayload, error) {
	tr := otel.Tracer("services/AIService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("feature.kind", string(kind)),
		),
	)
	defer span.End()

	start := time.Now()
	payload, err := s.run(ctx, userID, kind, dataFn)
	s.audit(ctx, userID, kind, statusFor(err), time.Since(start))
	return payload, err
}

func (s *AIService) run(ctx context.Context, userID string, kind domain.FeatureKind, dataFn func(*backend.LearningContext) prompts.Data) (domain.AIPayload, error) {
	lc, err := s.Backend.AssembleContext(ctx, userID, kind)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
	}

	prompt, err := prompts.Build(kind, s.Locale, dataFn(lc))
	if err != nil {
		return nil, err
	}

	text, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrInvalidOutput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
		}
		var qe *llm.QuotaError
		if errors.As(err, &qe) && qe.RetryAfter > 0 {
			log.Warn().
				Str("user_id", userID).
				Str("kind", string(kind)).
				Dur("retry_after", qe.RetryAfter).
				Msg("llm quota exhausted")
		}
		// Quota, timeout, transport, open breaker: all upstream to the
		// caller. The chain is kept so callers can still read the quota hint.
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	payload, err := llm.ParsePayload(kind, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	return payload, nil
}

// audit appends the outcome row; best effort.
func (s *AIService) audit(ctx context.Context, userID string, kind domain.FeatureKind, status string, latency time.Duration) {
	if s.DB == nil {
		return
	}
	model := ""
	if s.LLM != nil {
		model = s.LLM.Model()
	}
	if _, err := repo.CreateGenerationRecord(ctx, s.DB, userID, kind, status, model, latency); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func statusFor(err error) string {
	switch {
	case err == nil:
		return domain.GenStatusOK
	case errors.Is(err, ErrUserNotFound):
		return domain.GenStatusNotFound
	case errors.Is(err, ErrInvalidModelOutput):
		return domain.GenStatusInvalidOutput
	default:
		return domain.GenStatusUpstreamError
	}
}

// --- context summaries ---
//
// Prompt inputs are compact single-line summaries, not raw JSON dumps: the
// model behaves better with short structured text, and prompt size stays
// bounded no matter how much history a learner has.

const (
	maxSummarizedRecords = 10
	// Free-text request fields are capped before entering the prompt so a
	// hostile client cannot blow up prompt size or cost.
	maxFreeTextRunes = 500
)

func profileSummary(p *backend.Profile) string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if p.DisplayName != "" {
		parts = append(parts, p.DisplayName)
	}
	if p.CurrentLevel != "" {
		parts = append(parts, "level: "+p.CurrentLevel)
	}
	return strings.Join(parts, ", ")
}

func recordsSummary(records []backend.LearningRecord) string {
	if len(records) == 0 {
		return ""
	}
	n := len(records)
	if n > maxSummarizedRecords {
		n = maxSummarizedRecords
	}
	lines := make([]string, 0, n)
	for _, r := range records[:n] {
		line := fmt.Sprintf("%s %s (%d min)", r.StudiedAt.Format("01/02"), r.Subject, r.Minutes)
		if r.Topic != "" {
			line += ": " + r.Topic
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "; ")
}

func goalsSummary(goals []backend.LearningGoal) string {
	if len(goals) == 0 {
		return ""
	}
	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		line := g.Title
		if g.Subject != "" {
			line += " (" + g.Subject + ")"
		}
		if g.Progress > 0 {
			line += fmt.Sprintf(" %.0f%%", g.Progress*100)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "; ")
}

func analyticsLine(a *backend.Analytics) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s: %d sessions, %d min total, progress %.0f%%",
		a.Period, a.SessionCount, a.TotalMinutes, a.ProgressRate*100)
}

func filterBySubjects(records []backend.LearningRecord, subjects []string) []backend.LearningRecord {
	want := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		want[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	out := make([]backend.LearningRecord, 0, len(records))
	for _, r := range records {
		if _, ok := want[strings.ToLower(r.Subject)]; ok {
			out = append(out, r)
		}
	}
	return out
}
