package prompts

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/choibenassist/go-ai-backend/internal/domain"
)

func TestSystem_LocaleSelection(t *testing.T) {
	if got := System(language.Japanese); !strings.Contains(got, "学習アシスタント") {
		t.Errorf("japanese system prompt: %q", got)
	}
	if got := System(language.English); !strings.Contains(got, "learning assistant") {
		t.Errorf("english system prompt: %q", got)
	}
	// Regional Japanese variants still select the Japanese template.
	if got := System(language.MustParse("ja-JP")); !strings.Contains(got, "学習アシスタント") {
		t.Errorf("ja-JP system prompt: %q", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	d := Data{
		Subject:        "英語",
		TargetDate:     "2026-12-01",
		Difficulty:     "medium",
		AvailableTime:  60,
		ProfileSummary: "Yuki, level: beginner",
		RecentProgress: "08/28 英語 (30 min)",
		GoalsSummary:   "TOEIC 800 (英語) 40%",
	}

	a, err := Build(domain.KindPlan, language.Japanese, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(domain.KindPlan, language.Japanese, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a != b {
		t.Fatal("identical inputs produced different prompts")
	}
	if !strings.Contains(a, "英語") || !strings.Contains(a, "60分") {
		t.Errorf("prompt missing request parameters:\n%s", a)
	}
	// The JSON contract rides along with every prompt.
	if !strings.Contains(a, `"daily_tasks"`) {
		t.Error("prompt missing plan schema contract")
	}
}

func TestBuild_AllKindsBothLocales(t *testing.T) {
	d := Data{
		Subject:       "数学",
		Period:        "weekly",
		Challenge:     "集中力が続かない",
		GoalType:      "short_term",
		AvailableTime: 90,
	}
	for _, kind := range domain.Kinds {
		for _, loc := range []language.Tag{language.Japanese, language.English} {
			p, err := Build(kind, loc, d)
			if err != nil {
				t.Fatalf("Build(%s, %v): %v", kind, loc, err)
			}
			if p == "" {
				t.Fatalf("Build(%s, %v) produced empty prompt", kind, loc)
			}
			if !strings.Contains(p, "{") {
				t.Errorf("Build(%s, %v) missing JSON contract", kind, loc)
			}
		}
	}

	if _, err := Build(domain.FeatureKind("chat"), language.Japanese, d); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestBuild_EmptyFieldsRenderAsNone(t *testing.T) {
	p, err := Build(domain.KindAdvice, language.Japanese, Data{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(p, "指定なし") {
		t.Errorf("empty fields should render as 指定なし:\n%s", p)
	}

	pe, err := Build(domain.KindAdvice, language.English, Data{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(pe, "not specified") {
		t.Errorf("empty fields should render as 'not specified':\n%s", pe)
	}
}
