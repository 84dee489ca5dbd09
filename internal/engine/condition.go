package engine

import (
	"surveyflow/internal/model"
)

// EvaluateCondition evaluates a single condition against the answer map.
// Array answers are tested by membership: equals means "value is a member",
// notEquals is its negation. Unknown operators evaluate false, so an
// unrecognized condition hides content rather than showing it.
func EvaluateCondition(c model.Condition, answers model.Answers) bool {
	answer := answers[c.QuestionID]

	switch arr := answer.(type) {
	case []string:
		member := false
		for _, v := range arr {
			if equalValues(v, c.Value) {
				member = true
				break
			}
		}
		switch c.Operator {
		case model.OpEquals:
			return member
		case model.OpNotEquals:
			return !member
		}
		return false
	case []any:
		member := false
		for _, v := range arr {
			if equalValues(v, c.Value) {
				member = true
				break
			}
		}
		switch c.Operator {
		case model.OpEquals:
			return member
		case model.OpNotEquals:
			return !member
		}
		return false
	}

	switch c.Operator {
	case model.OpEquals:
		return equalValues(answer, c.Value)
	case model.OpNotEquals:
		return !equalValues(answer, c.Value)
	default:
		return false
	}
}

// EvaluateConditions combines conditions with AND/OR logic. An empty
// condition list always evaluates true: absence of conditions means always
// visible.
func EvaluateConditions(conditions []model.Condition, answers model.Answers, logic model.LogicOp) bool {
	if len(conditions) == 0 {
		return true
	}

	if logic == model.LogicOr {
		for _, c := range conditions {
			if EvaluateCondition(c, answers) {
				return true
			}
		}
		return false
	}

	// AND is the default
	for _, c := range conditions {
		if !EvaluateCondition(c, answers) {
			return false
		}
	}
	return true
}

// evaluateConditional applies an optional conditional block; a nil block is
// always visible
func evaluateConditional(cl *model.ConditionalLogic, answers model.Answers) bool {
	if cl == nil {
		return true
	}
	return EvaluateConditions(cl.Conditions, answers, cl.Logic)
}

// equalValues compares two scalar answer values. Numeric values are
// normalized before comparison because JSON decoding yields float64 while
// configs built in Go carry int. Slices never compare equal here; array
// answers are handled by the membership path above.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a.(type) {
	case []any, []string:
		return false
	}
	switch b.(type) {
	case []any, []string:
		return false
	}
	if af, ok := numericValue(a); ok {
		if bf, bok := numericValue(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}

// numericValue converts Go numeric types to float64. Strings are not
// coerced; "5" and 5 are distinct values under equality.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
