package domain

// Request payloads for the five AI endpoints. The user id travels in the URL
// path; these bodies carry only the feature parameters. Binding tags are
// enforced by Gin; a binding failure maps to a 422 validation_error.

// PlanRequest asks for a personalized learning plan.
type PlanRequest struct {
	// Subject is the study subject the plan should cover.
	Subject string `json:"subject" binding:"required,min=1,max=200" example:"英語"`
	// TargetDate optionally sets the completion target (RFC 3339 date).
	TargetDate string `json:"target_date,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2026-12-01"`
	// DifficultyLevel is one of easy|medium|hard.
	DifficultyLevel string `json:"difficulty_level,omitempty" binding:"omitempty,oneof=easy medium hard" example:"medium"`
	// AvailableTimePerDay is the daily study budget in minutes.
	AvailableTimePerDay int `json:"available_time_per_day,omitempty" binding:"omitempty,gt=0,lte=480" example:"60"`
}

// TodoRequest asks for today's study to-do list.
type TodoRequest struct {
	// Date optionally selects the target day (RFC 3339 date, default today).
	Date string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2026-08-29"`
	// AvailableTime is the time budget for the day in minutes.
	AvailableTime int `json:"available_time,omitempty" binding:"omitempty,gt=0,lte=480" example:"120"`
	// DailyGoal optionally names a concrete goal for the day.
	DailyGoal string `json:"daily_goal,omitempty" binding:"omitempty,max=500" example:"単語を50個覚える"`
}

// AnalysisRequest asks for a progress analysis over a period.
type AnalysisRequest struct {
	// Period is one of daily|weekly|monthly.
	Period Period `json:"period" binding:"required,oneof=daily weekly monthly" example:"weekly"`
	// Subjects optionally restricts the analysis to these subjects.
	Subjects []string `json:"subjects,omitempty" binding:"omitempty,dive,min=1,max=200"`
}

// AdviceRequest asks for personalized learning advice.
type AdviceRequest struct {
	// CurrentChallenge describes what the learner is struggling with.
	CurrentChallenge string `json:"current_challenge,omitempty" binding:"omitempty,max=1000"`
	// Context carries free-form extra context for the advisor.
	Context string `json:"context,omitempty" binding:"omitempty,max=1000"`
}

// GoalsRequest asks for SMART learning goal suggestions.
type GoalsRequest struct {
	// GoalType is short_term or long_term.
	GoalType string `json:"goal_type" binding:"required,oneof=short_term long_term" example:"short_term"`
	// Subject optionally scopes goals to a subject.
	Subject string `json:"subject,omitempty" binding:"omitempty,max=200"`
	// CurrentLevel optionally describes the learner's current level.
	CurrentLevel string `json:"current_level,omitempty" binding:"omitempty,max=200"`
}
