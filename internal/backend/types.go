// Package backend implements the outbound adapter for the hosted Postgres
// REST API (PostgREST-style) that owns the learner's profile, study records,
// goals, and analytics. The adapter is read-only: it assembles a
// LearningContext for prompt building and maps transport failures to the
// local error taxonomy.
package backend

import "time"

// Profile is the learner's stored profile row.
type Profile struct {
	ID                  string         `json:"id"`
	DisplayName         string         `json:"display_name"`
	CurrentLevel        string         `json:"current_level"`
	LearningPreferences map[string]any `json:"learning_preferences"`
	CreatedAt           time.Time      `json:"created_at"`
}

// LearningRecord is one completed study session.
type LearningRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Topic     string    `json:"topic"`
	Minutes   int       `json:"minutes"`
	Note      string    `json:"note"`
	StudiedAt time.Time `json:"studied_at"`
}

// LearningGoal is a learner-defined goal tracked by the web client.
type LearningGoal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Status      string     `json:"status"`
	TargetDate  *time.Time `json:"target_date"`
	Progress    float64    `json:"progress"`
	Description string     `json:"description"`
}

// Analytics is a pre-aggregated progress row for one period.
type Analytics struct {
	UserID       string  `json:"user_id"`
	Period       string  `json:"period"`
	TotalMinutes int     `json:"total_minutes"`
	SessionCount int     `json:"session_count"`
	ProgressRate float64 `json:"progress_rate"`
}

// LearningContext is the assembled, read-only view of one learner used as
// prompt input. Which fields are populated depends on the feature kind; nil
// slices and a nil Profile simply mean "not fetched for this feature".
type LearningContext struct {
	UserID    string
	Profile   *Profile
	Records   []LearningRecord
	Goals     []LearningGoal
	Analytics *Analytics
}
