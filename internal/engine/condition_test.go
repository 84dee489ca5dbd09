package engine

import (
	"testing"

	"surveyflow/internal/model"
)

func TestEvaluateCondition(t *testing.T) {
	tests := []struct {
		name    string
		cond    model.Condition
		answers model.Answers
		want    bool
	}{
		{
			name:    "scalar equals match",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: "yes"},
			answers: model.Answers{"q1": "yes"},
			want:    true,
		},
		{
			name:    "scalar equals mismatch",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: "yes"},
			answers: model.Answers{"q1": "no"},
			want:    false,
		},
		{
			name:    "scalar notEquals",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpNotEquals, Value: "yes"},
			answers: model.Answers{"q1": "no"},
			want:    true,
		},
		{
			name:    "missing answer equals",
			cond:    model.Condition{QuestionID: "q9", Operator: model.OpEquals, Value: "yes"},
			answers: model.Answers{},
			want:    false,
		},
		{
			name:    "missing answer notEquals",
			cond:    model.Condition{QuestionID: "q9", Operator: model.OpNotEquals, Value: "yes"},
			answers: model.Answers{},
			want:    true,
		},
		{
			name:    "numeric normalization int vs float64",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: 5},
			answers: model.Answers{"q1": float64(5)},
			want:    true,
		},
		{
			name:    "numeric string is not a number",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: 5},
			answers: model.Answers{"q1": "5"},
			want:    false,
		},
		{
			name:    "array equals means membership",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: "a"},
			answers: model.Answers{"q1": []string{"a", "b"}},
			want:    true,
		},
		{
			name:    "array equals non-member",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: "c"},
			answers: model.Answers{"q1": []string{"a", "b"}},
			want:    false,
		},
		{
			name:    "array notEquals is negated membership",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpNotEquals, Value: "a"},
			answers: model.Answers{"q1": []string{"a", "b"}},
			want:    false,
		},
		{
			name:    "json decoded array membership",
			cond:    model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: "b"},
			answers: model.Answers{"q1": []any{"a", "b"}},
			want:    true,
		},
		{
			name:    "unknown operator hides content",
			cond:    model.Condition{QuestionID: "q1", Operator: "contains", Value: "a"},
			answers: model.Answers{"q1": "a"},
			want:    false,
		},
		{
			name:    "unknown operator on array answer",
			cond:    model.Condition{QuestionID: "q1", Operator: "contains", Value: "a"},
			answers: model.Answers{"q1": []string{"a"}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateCondition(tt.cond, tt.answers); got != tt.want {
				t.Fatalf("EvaluateCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateConditions(t *testing.T) {
	answers := model.Answers{"q1": "yes", "q2": "no"}
	c1 := model.Condition{QuestionID: "q1", Operator: model.OpEquals, Value: "yes"}
	c2 := model.Condition{QuestionID: "q2", Operator: model.OpEquals, Value: "yes"}

	tests := []struct {
		name       string
		conditions []model.Condition
		logic      model.LogicOp
		want       bool
	}{
		{name: "empty list always true", conditions: nil, logic: model.LogicAnd, want: true},
		{name: "empty list true under OR too", conditions: nil, logic: model.LogicOr, want: true},
		{name: "AND all true", conditions: []model.Condition{c1}, logic: model.LogicAnd, want: true},
		{name: "AND one false", conditions: []model.Condition{c1, c2}, logic: model.LogicAnd, want: false},
		{name: "OR one true", conditions: []model.Condition{c1, c2}, logic: model.LogicOr, want: true},
		{name: "OR all false", conditions: []model.Condition{c2}, logic: model.LogicOr, want: false},
		{name: "unset logic defaults to AND", conditions: []model.Condition{c1, c2}, logic: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateConditions(tt.conditions, answers, tt.logic); got != tt.want {
				t.Fatalf("EvaluateConditions() = %v, want %v", got, tt.want)
			}
		})
	}
}
