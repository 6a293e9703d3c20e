package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/choibenassist/go-ai-backend/internal/domain"
)

// ParsePayload extracts the first JSON object embedded in the model reply and
// decodes it into the feature's response schema. A reply with no JSON object,
// a type mismatch, a key outside the schema, a missing required field, or an
// enum value outside the recognized set fails with ErrInvalidOutput. The malformed reply is never
// surfaced to the client.
func ParsePayload(kind domain.FeatureKind, text string) (domain.AIPayload, error) {
	raw, ok := extractJSON(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrInvalidOutput)
	}

	var payload domain.AIPayload
	switch kind {
	case domain.KindPlan:
		payload = &domain.PlanResponse{}
	case domain.KindTodo:
		payload = &domain.TodoResponse{}
	case domain.KindAnalysis:
		payload = &domain.AnalysisResponse{}
	case domain.KindAdvice:
		payload = &domain.AdviceResponse{}
	case domain.KindGoals:
		payload = &domain.GoalsResponse{}
	default:
		return nil, fmt.Errorf("llm: unknown feature kind %q", kind)
	}

	// Strict decode: the prompt demands the exact schema, so a key outside
	// it means the model drifted and the payload cannot be trusted.
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if todo, ok := payload.(*domain.TodoResponse); ok {
		todo.Normalize()
	}
	return payload, nil
}

// extractJSON returns the first balanced top-level JSON object in s. Models
// routinely wrap JSON in prose or markdown fences, so scanning is tolerant:
// braces inside JSON strings are skipped, escapes are honored.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
