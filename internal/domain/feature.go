// Package domain defines the transient request/response payloads exchanged
// with the learning-tracker client and the persistence models for the
// generation audit log. Response payloads carry strict validation so that
// malformed model output never leaves the adapter boundary.
package domain

import "fmt"

// FeatureKind identifies one of the five AI generation features. It selects
// both the prompt template and the response schema.
type FeatureKind string

const (
	KindPlan     FeatureKind = "plan"
	KindTodo     FeatureKind = "todo"
	KindAnalysis FeatureKind = "analysis"
	KindAdvice   FeatureKind = "advice"
	KindGoals    FeatureKind = "goals"
)

// Kinds lists all recognized feature kinds in route order.
var Kinds = []FeatureKind{KindPlan, KindTodo, KindAnalysis, KindAdvice, KindGoals}

// Valid reports whether k is one of the recognized feature kinds.
func (k FeatureKind) Valid() bool {
	switch k {
	case KindPlan, KindTodo, KindAnalysis, KindAdvice, KindGoals:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (k FeatureKind) String() string { return string(k) }

// ParseFeatureKind converts a path segment into a FeatureKind.
func ParseFeatureKind(s string) (FeatureKind, error) {
	k := FeatureKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown feature kind %q", s)
	}
	return k, nil
}
