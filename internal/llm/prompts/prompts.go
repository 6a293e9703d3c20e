// Package prompts holds the deterministic prompt templates for the five
// generation features. Each feature pairs a system preamble with a user
// template and a strict JSON output contract; the model is never asked for
// free-form prose. Templates exist in Japanese (the product's primary
// locale) and English; selection happens by language tag.
package prompts

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/choibenassist/go-ai-backend/internal/domain"
)

// Data carries the template inputs: request parameters plus compact
// summaries of the learner's fetched context. All fields are plain strings
// or ints so prompt output is reproducible for identical inputs.
type Data struct {
	// Request parameters
	Subject       string
	TargetDate    string
	Difficulty    string
	AvailableTime int // minutes
	DailyGoal     string
	Period        string
	Challenge     string
	ExtraContext  string
	GoalType      string
	CurrentLevel  string

	// Context summaries (rendered by the service from the LearningContext)
	ProfileSummary string
	RecentProgress string
	GoalsSummary   string
	AnalyticsLine  string
}

const systemJA = `あなたは学習アシスタントです。
効率的で実用的なアドバイスを短時間で提供してください。
回答は日本語で、簡潔かつ具体的にしてください。
回答は必ず指定されたJSONオブジェクトのみで出力し、それ以外のテキストを含めないでください。`

const systemEN = `You are a learning assistant.
Provide efficient, practical guidance without filler.
Answer in English, concisely and concretely.
Reply with the specified JSON object only; include no other text.`

// Per-feature JSON output contracts. Keys are stable and language-neutral;
// enum values are the exact strings the response schema accepts.
var schemas = map[domain.FeatureKind]string{
	domain.KindPlan: `{
  "subject": string,
  "summary": string,
  "daily_tasks": [ { "day": int, "title": string, "description": string, "estimated_time": int } ],
  "estimated_completion_date": "YYYY-MM-DD"
}`,
	domain.KindTodo: `{
  "todos": [ { "id": int, "title": string, "description": string,
               "priority": "low"|"medium"|"high", "estimated_time": int,
               "category": "復習"|"新規学習"|"練習"|"試験対策", "reason": string } ],
  "total_estimated_time": int,
  "motivational_message": string
}`,
	domain.KindAnalysis: `{
  "period": "daily"|"weekly"|"monthly",
  "overall_progress": { "completion_rate": number, "total_study_time": int, "trend": string },
  "subject_breakdown": [ { "subject": string, "study_time": int, "progress_rate": number, "comment": string } ],
  "strengths": [string],
  "weaknesses": [string],
  "recommendations": [string]
}`,
	domain.KindAdvice: `{
  "advice_text": string,
  "action_items": [string],
  "resources": [ { "title": string, "url": string } ]
}`,
	domain.KindGoals: `{
  "goals": [ { "title": string, "description": string, "target_date": "YYYY-MM-DD",
               "measurable_criteria": string, "action_steps": [string] } ],
  "rationale": string
}`,
}

// System returns the system preamble for the given locale. Japanese is the
// default; any non-Japanese tag falls back to English.
func System(loc language.Tag) string {
	if isJapanese(loc) {
		return systemJA
	}
	return systemEN
}

// Build renders the full prompt (system + user template + JSON contract) for
// a feature kind. Identical inputs always produce identical prompts.
func Build(kind domain.FeatureKind, loc language.Tag, d Data) (string, error) {
	var user string
	ja := isJapanese(loc)

	switch kind {
	case domain.KindPlan:
		if ja {
			user = fmt.Sprintf(`以下の条件で学習プランを作成してください：

科目: %s
目標達成日: %s
難易度: %s
1日の利用可能時間: %d分
学習者のプロフィール: %s
最近の学習履歴: %s
現在の目標: %s

具体的で実行しやすい日別の学習プランを提案してください。`,
				d.Subject, orNone(d.TargetDate, ja), orNone(d.Difficulty, ja),
				d.AvailableTime, orNone(d.ProfileSummary, ja),
				orNone(d.RecentProgress, ja), orNone(d.GoalsSummary, ja))
		} else {
			user = fmt.Sprintf(`Create a learning plan under these conditions:

Subject: %s
Target date: %s
Difficulty: %s
Available time per day: %d minutes
Learner profile: %s
Recent history: %s
Current goals: %s

Propose a concrete, actionable day-by-day plan.`,
				d.Subject, orNone(d.TargetDate, ja), orNone(d.Difficulty, ja),
				d.AvailableTime, orNone(d.ProfileSummary, ja),
				orNone(d.RecentProgress, ja), orNone(d.GoalsSummary, ja))
		}

	case domain.KindTodo:
		if ja {
			user = fmt.Sprintf(`以下の条件で今日のTODOリストを作成してください：

利用可能時間: %d分
今日の目標: %s
最近の進捗: %s

今日中に完了できる具体的なタスクを提案してください。`,
				d.AvailableTime, orNone(d.DailyGoal, ja), orNone(d.RecentProgress, ja))
		} else {
			user = fmt.Sprintf(`Create today's TODO list under these conditions:

Available time: %d minutes
Today's goal: %s
Recent progress: %s

Propose concrete tasks that can be finished today.`,
				d.AvailableTime, orNone(d.DailyGoal, ja), orNone(d.RecentProgress, ja))
		}

	case domain.KindAnalysis:
		if ja {
			user = fmt.Sprintf(`以下の学習データを分析してください：

期間: %s
学習記録: %s
集計指標: %s
目標: %s

客観的な分析と改善提案を提供してください。`,
				d.Period, orNone(d.RecentProgress, ja), orNone(d.AnalyticsLine, ja),
				orNone(d.GoalsSummary, ja))
		} else {
			user = fmt.Sprintf(`Analyze the following learning data:

Period: %s
Study records: %s
Aggregates: %s
Goals: %s

Provide an objective analysis with improvement suggestions.`,
				d.Period, orNone(d.RecentProgress, ja), orNone(d.AnalyticsLine, ja),
				orNone(d.GoalsSummary, ja))
		}

	case domain.KindAdvice:
		if ja {
			user = fmt.Sprintf(`以下の状況でアドバイスをお願いします：

現在の課題: %s
文脈: %s
学習者のプロフィール: %s
最近の学習状況: %s

具体的で実行しやすいアドバイスをお願いします。`,
				orNone(d.Challenge, ja), orNone(d.ExtraContext, ja),
				orNone(d.ProfileSummary, ja), orNone(d.RecentProgress, ja))
		} else {
			user = fmt.Sprintf(`Please advise on the following situation:

Current challenge: %s
Context: %s
Learner profile: %s
Recent activity: %s

Give concrete, easy-to-apply advice.`,
				orNone(d.Challenge, ja), orNone(d.ExtraContext, ja),
				orNone(d.ProfileSummary, ja), orNone(d.RecentProgress, ja))
		}

	case domain.KindGoals:
		if ja {
			user = fmt.Sprintf(`以下の条件でSMART原則に基づく学習目標を設定してください：

目標タイプ: %s
科目: %s
現在のレベル: %s
既存の目標: %s

達成可能で測定可能な目標を提案してください。`,
				d.GoalType, orNone(d.Subject, ja), orNone(d.CurrentLevel, ja),
				orNone(d.GoalsSummary, ja))
		} else {
			user = fmt.Sprintf(`Set SMART learning goals under these conditions:

Goal type: %s
Subject: %s
Current level: %s
Existing goals: %s

Propose achievable, measurable goals.`,
				d.GoalType, orNone(d.Subject, ja), orNone(d.CurrentLevel, ja),
				orNone(d.GoalsSummary, ja))
		}

	default:
		return "", fmt.Errorf("prompts: unknown feature kind %q", kind)
	}

	var b strings.Builder
	b.WriteString(System(loc))
	b.WriteString("\n\n")
	b.WriteString(user)
	b.WriteString("\n\n")
	if ja {
		b.WriteString("次のJSONスキーマに厳密に従って出力してください：\n")
	} else {
		b.WriteString("Output strictly following this JSON schema:\n")
	}
	b.WriteString(schemas[kind])
	return b.String(), nil
}

// orNone substitutes a locale-appropriate "not specified" marker for empty
// template inputs so prompts stay well-formed.
func orNone(s string, ja bool) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	if ja {
		return "指定なし"
	}
	return "not specified"
}

// isJapanese reports whether the tag's base language is Japanese.
func isJapanese(loc language.Tag) bool {
	base, _ := loc.Base()
	return base.String() == "ja"
}
