package model

// Answers maps question id to the raw answer value. Values are JSON-shaped:
// string, float64, bool, []string/[]any or nil.
type Answers map[string]any

// Clone returns a shallow copy of the answer map
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// IsEmptyValue reports whether an answer counts as unanswered: nil, the
// empty string, or an empty array
func IsEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	default:
		return false
	}
}
