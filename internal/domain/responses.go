package domain

import (
	"errors"
	"fmt"
	"time"
)

// Priority ranks a to-do item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a recognized priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Category classifies a study task. Values match what the web client renders.
type Category string

const (
	CategoryReview   Category = "復習"
	CategoryNew      Category = "新規学習"
	CategoryPractice Category = "練習"
	CategoryExamPrep Category = "試験対策"
)

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryReview, CategoryNew, CategoryPractice, CategoryExamPrep:
		return true
	}
	return false
}

// Period is an analysis window.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a recognized period.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// AIPayload is the schema contract for model-generated payloads. Every
// response type validates its required fields and enum values; a payload that
// fails Validate must never be returned to the client.
type AIPayload interface {
	Kind() FeatureKind
	Validate() error
}

//
// Plan
//

// PlanTask is a single day's task inside a learning plan.
type PlanTask struct {
	Day           int    `json:"day"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EstimatedTime int    `json:"estimated_time"` // minutes
}

// PlanResponse is the structured study plan returned by /api/ai/plan.
// PlanID and GeneratedAt are stamped server-side; the remaining fields are
// model output and must pass Validate.
type PlanResponse struct {
	PlanID                  string     `json:"plan_id,omitempty"`
	Subject                 string     `json:"subject"`
	Summary                 string     `json:"summary"`
	DailyTasks              []PlanTask `json:"daily_tasks"`
	EstimatedCompletionDate string     `json:"estimated_completion_date,omitempty"`
	GeneratedAt             time.Time  `json:"generated_at,omitempty"`
}

// Kind implements AIPayload.
func (PlanResponse) Kind() FeatureKind { return KindPlan }

// Validate implements AIPayload.
func (r *PlanResponse) Validate() error {
	if r.Subject == "" {
		return errors.New("plan: missing subject")
	}
	if r.Summary == "" {
		return errors.New("plan: missing summary")
	}
	if len(r.DailyTasks) == 0 {
		return errors.New("plan: daily_tasks is empty")
	}
	for i, t := range r.DailyTasks {
		if t.Title == "" {
			return fmt.Errorf("plan: daily_tasks[%d] missing title", i)
		}
		if t.EstimatedTime <= 0 {
			return fmt.Errorf("plan: daily_tasks[%d] estimated_time must be > 0", i)
		}
	}
	return nil
}

//
// Todo
//

// TodoItem is one entry in a generated daily to-do list.
type TodoItem struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      Priority `json:"priority"`
	EstimatedTime int      `json:"estimated_time"` // minutes
	Category      Category `json:"category"`
	Reason        string   `json:"reason"`
}

// TodoResponse is the structured to-do list returned by /api/ai/todo.
type TodoResponse struct {
	Date                string     `json:"date,omitempty"`
	Todos               []TodoItem `json:"todos"`
	TotalEstimatedTime  int        `json:"total_estimated_time"`
	MotivationalMessage string     `json:"motivational_message"`
}

// Kind implements AIPayload.
func (TodoResponse) Kind() FeatureKind { return KindTodo }

// Validate implements AIPayload.
func (r *TodoResponse) Validate() error {
	if len(r.Todos) == 0 {
		return errors.New("todo: todos is empty")
	}
	for i, it := range r.Todos {
		if it.Title == "" {
			return fmt.Errorf("todo: todos[%d] missing title", i)
		}
		if !it.Priority.Valid() {
			return fmt.Errorf("todo: todos[%d] unknown priority %q", i, it.Priority)
		}
		if !it.Category.Valid() {
			return fmt.Errorf("todo: todos[%d] unknown category %q", i, it.Category)
		}
		if it.EstimatedTime <= 0 {
			return fmt.Errorf("todo: todos[%d] estimated_time must be > 0", i)
		}
	}
	if r.MotivationalMessage == "" {
		return errors.New("todo: missing motivational_message")
	}
	return nil
}

// Normalize recomputes the estimated-time total from the items; the model's
// own arithmetic is not trusted.
func (r *TodoResponse) Normalize() {
	sum := 0
	for _, it := range r.Todos {
		sum += it.EstimatedTime
	}
	r.TotalEstimatedTime = sum
}

//
// Analysis
//

// SubjectBreakdown summarizes progress for a single subject.
type SubjectBreakdown struct {
	Subject      string  `json:"subject"`
	StudyTime    int     `json:"study_time"` // minutes in period
	ProgressRate float64 `json:"progress_rate"`
	Comment      string  `json:"comment,omitempty"`
}

// AnalysisResponse is the structured progress analysis returned by
// /api/ai/analysis.
type AnalysisResponse struct {
	UserID           string             `json:"user_id,omitempty"`
	Period           Period             `json:"period"`
	AnalysisDate     time.Time          `json:"analysis_date,omitempty"`
	OverallProgress  map[string]any     `json:"overall_progress"`
	SubjectBreakdown []SubjectBreakdown `json:"subject_breakdown"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
	Recommendations  []string           `json:"recommendations"`
}

// Kind implements AIPayload.
func (AnalysisResponse) Kind() FeatureKind { return KindAnalysis }

// Validate implements AIPayload.
func (r *AnalysisResponse) Validate() error {
	if r.Period != "" && !r.Period.Valid() {
		return fmt.Errorf("analysis: unknown period %q", r.Period)
	}
	if len(r.OverallProgress) == 0 {
		return errors.New("analysis: missing overall_progress")
	}
	if len(r.Strengths) == 0 {
		return errors.New("analysis: strengths is empty")
	}
	if len(r.Weaknesses) == 0 {
		return errors.New("analysis: weaknesses is empty")
	}
	if len(r.Recommendations) == 0 {
		return errors.New("analysis: recommendations is empty")
	}
	for i, sb := range r.SubjectBreakdown {
		if sb.Subject == "" {
			return fmt.Errorf("analysis: subject_breakdown[%d] missing subject", i)
		}
	}
	return nil
}

//
// Advice
//

// Resource is a recommended learning resource.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// AdviceResponse is the structured advice returned by /api/ai/advice.
type AdviceResponse struct {
	AdviceID    string     `json:"advice_id,omitempty"`
	GeneratedAt time.Time  `json:"generated_at,omitempty"`
	AdviceText  string     `json:"advice_text"`
	ActionItems []string   `json:"action_items"`
	Resources   []Resource `json:"resources,omitempty"`
}

// Kind implements AIPayload.
func (AdviceResponse) Kind() FeatureKind { return KindAdvice }

// Validate implements AIPayload.
func (r *AdviceResponse) Validate() error {
	if r.AdviceText == "" {
		return errors.New("advice: missing advice_text")
	}
	if len(r.ActionItems) == 0 {
		return errors.New("advice: action_items is empty")
	}
	for i, res := range r.Resources {
		if res.Title == "" {
			return fmt.Errorf("advice: resources[%d] missing title", i)
		}
	}
	return nil
}

//
// Goals
//

// Goal is a single SMART goal suggestion.
type Goal struct {
	GoalID             string   `json:"goal_id,omitempty"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	TargetDate         string   `json:"target_date"`
	MeasurableCriteria string   `json:"measurable_criteria"`
	ActionSteps        []string `json:"action_steps"`
}

// GoalsResponse is the structured goal suggestion set returned by
// /api/ai/goals.
type GoalsResponse struct {
	GeneratedAt time.Time `json:"generated_at,omitempty"`
	Goals       []Goal    `json:"goals"`
	Rationale   string    `json:"rationale"`
}

// Kind implements AIPayload.
func (GoalsResponse) Kind() FeatureKind { return KindGoals }

// Validate implements AIPayload.
func (r *GoalsResponse) Validate() error {
	if len(r.Goals) == 0 {
		return errors.New("goals: goals is empty")
	}
	for i, g := range r.Goals {
		if g.Title == "" {
			return fmt.Errorf("goals: goals[%d] missing title", i)
		}
		if g.MeasurableCriteria == "" {
			return fmt.Errorf("goals: goals[%d] missing measurable_criteria", i)
		}
		if len(g.ActionSteps) == 0 {
			return fmt.Errorf("goals: goals[%d] action_steps is empty", i)
		}
	}
	if r.Rationale == "" {
		return errors.New("goals: missing rationale")
	}
	return nil
}
