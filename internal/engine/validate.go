package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"surveyflow/internal/model"
)

// Validate checks a question's answer and returns the accumulated error
// messages, empty when valid. Rules run in declaration order; a question can
// yield multiple errors. Cross-question rules only fire when the other
// answer is present, and range rules pass silently on unparseable values so
// a bad input never wedges navigation on a different rule's behalf.
func Validate(q *model.Question, answer any, allAnswers model.Answers) []string {
	var errs []string

	if (q.Required || q.RequiredToNavigate) && model.IsEmptyValue(answer) {
		errs = append(errs, q.Label+" is required")
	}

	if model.IsEmptyValue(answer) {
		return errs
	}

	for _, rule := range q.Validation {
		switch rule.Type {
		case model.RuleRequired:
			if model.IsEmptyValue(answer) {
				errs = append(errs, ruleMessage(rule, "This field is required"))
			}
		case model.RuleMin:
			s, isString := answer.(string)
			if !isString {
				continue // length rules are type-gated to strings
			}
			if n, ok := numericValue(rule.Value); ok && len([]rune(s)) < int(n) {
				errs = append(errs, ruleMessage(rule, fmt.Sprintf("Minimum %d characters required", int(n))))
			}
		case model.RuleMax:
			s, isString := answer.(string)
			if !isString {
				continue
			}
			if n, ok := numericValue(rule.Value); ok && len([]rune(s)) > int(n) {
				errs = append(errs, ruleMessage(rule, fmt.Sprintf("Maximum %d characters allowed", int(n))))
			}
		case model.RulePattern:
			pattern, _ := rule.Value.(string)
			if pattern == "" {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue // an uncompilable pattern never fires
			}
			if !re.MatchString(stringify(answer)) {
				errs = append(errs, ruleMessage(rule, "Invalid format"))
			}
		case model.RuleCrossQuestion:
			if rule.QuestionID == "" || rule.Operator == "" {
				continue
			}
			other, ok := allAnswers[rule.QuestionID]
			if !ok || other == nil {
				continue
			}
			if !compareValues(answer, other, rule.Operator) {
				errs = append(errs, ruleMessage(rule,
					fmt.Sprintf("This value must be %s the value of %s", operatorDescription(rule.Operator), rule.QuestionID)))
			}
		case model.RuleDateRange:
			if rule.QuestionID == "" || rule.Operator == "" {
				continue
			}
			other, ok := allAnswers[rule.QuestionID]
			if !ok || model.IsEmptyValue(other) {
				continue
			}
			d1, ok1 := parseDate(answer)
			d2, ok2 := parseDate(other)
			if !ok1 || !ok2 {
				continue // never block on unparseable dates
			}
			if !compareDates(d1, d2, rule.Operator) {
				errs = append(errs, ruleMessage(rule,
					fmt.Sprintf("This date must be %s %s", operatorDescription(rule.Operator), rule.QuestionID)))
			}
		case model.RuleNumberRange:
			if rule.QuestionID == "" || rule.Operator == "" {
				continue
			}
			other, ok := allAnswers[rule.QuestionID]
			if !ok || other == nil {
				continue
			}
			n1, ok1 := parseNumber(answer)
			n2, ok2 := parseNumber(other)
			if !ok1 || !ok2 {
				continue // non-numeric values pass silently
			}
			if !compareNumbers(n1, n2, rule.Operator) {
				errs = append(errs, ruleMessage(rule,
					fmt.Sprintf("This number must be %s %s", operatorDescription(rule.Operator), rule.QuestionID)))
			}
		case model.RuleCustom:
			// Reserved for caller-side hooks; no engine behavior.
		}
	}

	return errs
}

// IsValidForNavigation is the single predicate gating forward navigation and
// completion. A question that is not requiredToNavigate never blocks, even
// when its soft required flag is set.
func IsValidForNavigation(q *model.Question, answer any, allAnswers model.Answers) bool {
	if !q.RequiredToNavigate {
		return true
	}
	return len(Validate(q, answer, allAnswers)) == 0
}

func ruleMessage(rule model.ValidationRule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}

// compareValues compares two answers for cross-question rules. Equality is
// strict; ordering operators coerce both sides to numbers and fail the
// comparison when either side does not parse. Unknown operators pass.
func compareValues(a, b any, op model.CompareOp) bool {
	switch op {
	case model.OpEquals:
		return equalValues(a, b)
	case model.OpNotEquals:
		return !equalValues(a, b)
	case model.OpGreaterThan, model.OpLessThan, model.OpGreaterThanOrEqual, model.OpLessThanOrEqual:
		n1, ok1 := parseNumber(a)
		n2, ok2 := parseNumber(b)
		if !ok1 || !ok2 {
			return false
		}
		return compareNumbers(n1, n2, op)
	default:
		return true
	}
}

func compareNumbers(a, b float64, op model.CompareOp) bool {
	switch op {
	case model.OpEquals:
		return a == b
	case model.OpNotEquals:
		return a != b
	case model.OpGreaterThan:
		return a > b
	case model.OpLessThan:
		return a < b
	case model.OpGreaterThanOrEqual:
		return a >= b
	case model.OpLessThanOrEqual:
		return a <= b
	default:
		return true
	}
}

func compareDates(a, b time.Time, op model.CompareOp) bool {
	switch op {
	case model.OpEquals:
		return a.Equal(b)
	case model.OpNotEquals:
		return !a.Equal(b)
	case model.OpGreaterThan:
		return a.After(b)
	case model.OpLessThan:
		return a.Before(b)
	case model.OpGreaterThanOrEqual:
		return !a.Before(b)
	case model.OpLessThanOrEqual:
		return !a.After(b)
	default:
		return true
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	s := stringify(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a numeric type or numeric string to float64
func parseNumber(v any) (float64, bool) {
	if f, ok := numericValue(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// operatorDescription renders an operator for default error messages
func operatorDescription(op model.CompareOp) string {
	switch op {
	case model.OpEquals:
		return "equal to"
	case model.OpNotEquals:
		return "not equal to"
	case model.OpGreaterThan:
		return "greater than"
	case model.OpLessThan:
		return "less than"
	case model.OpGreaterThanOrEqual:
		return "greater than or equal to"
	case model.OpLessThanOrEqual:
		return "less than or equal to"
	default:
		return string(op)
	}
}
