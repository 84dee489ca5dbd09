package model

import "time"

// QuestionType defines the input type of a question
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionSelect   QuestionType = "select"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionRadio    QuestionType = "radio"
	QuestionNumber   QuestionType = "number"
	QuestionEmail    QuestionType = "email"
	QuestionDate     QuestionType = "date"
)

// IsChoice reports whether the question type selects from a fixed option set
func (t QuestionType) IsChoice() bool {
	return t == QuestionSelect || t == QuestionCheckbox || t == QuestionRadio
}

// CompareOp is a comparison operator used in conditions and validation rules
type CompareOp string

const (
	OpEquals             CompareOp = "equals"
	OpNotEquals          CompareOp = "notEquals"
	OpGreaterThan        CompareOp = "greaterThan"
	OpLessThan           CompareOp = "lessThan"
	OpGreaterThanOrEqual CompareOp = "greaterThanOrEqual"
	OpLessThanOrEqual    CompareOp = "lessThanOrEqual"
)

// LogicOp combines multiple conditions
type LogicOp string

const (
	LogicAnd LogicOp = "AND"
	LogicOr  LogicOp = "OR"
)

// Condition tests a single answer against a literal value
type Condition struct {
	QuestionID string    `json:"questionId" bson:"questionId"`
	Operator   CompareOp `json:"operator" bson:"operator"`
	Value      any       `json:"value" bson:"value"`
}

// ConditionalLogic controls the visibility of a stage, group, page or question
type ConditionalLogic struct {
	Conditions []Condition `json:"conditions" bson:"conditions"`
	Logic      LogicOp     `json:"logic,omitempty" bson:"logic,omitempty"` // defaults to AND
}

// RuleType enumerates validation rule kinds
type RuleType string

const (
	RuleRequired      RuleType = "required"
	RuleMin           RuleType = "min"
	RuleMax           RuleType = "max"
	RulePattern       RuleType = "pattern"
	RuleCrossQuestion RuleType = "crossQuestion"
	RuleDateRange     RuleType = "dateRange"
	RuleNumberRange   RuleType = "numberRange"
	RuleCustom        RuleType = "custom"
)

// ValidationRule is applied to a question's answer. Cross-question rules
// carry the other question's id and a comparison operator.
type ValidationRule struct {
	Type       RuleType  `json:"type" bson:"type"`
	Value      any       `json:"value,omitempty" bson:"value,omitempty"`
	Message    string    `json:"message,omitempty" bson:"message,omitempty"`
	QuestionID string    `json:"questionId,omitempty" bson:"questionId,omitempty"`
	Operator   CompareOp `json:"operator,omitempty" bson:"operator,omitempty"`
}

// Option is a selectable choice for select/checkbox/radio questions
type Option struct {
	Label       string `json:"label" bson:"label"`
	Value       string `json:"value" bson:"value"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// SkipLogic redirects forward navigation to a specific page when its
// conditions hold
type SkipLogic struct {
	Conditions []Condition `json:"conditions" bson:"conditions"`
	Logic      LogicOp     `json:"logic,omitempty" bson:"logic,omitempty"`
	NextPageID string      `json:"nextPageId" bson:"nextPageId"`
}

// Question is a single input on a page. Required marks the question for
// display purposes only; RequiredToNavigate is the hard gate consulted by
// forward navigation and completion.
type Question struct {
	ID                 string            `json:"id" bson:"id"`
	Type               QuestionType      `json:"type" bson:"type"`
	Label              string            `json:"label" bson:"label"`
	Description        string            `json:"description,omitempty" bson:"description,omitempty"`
	Placeholder        string            `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Required           bool              `json:"required,omitempty" bson:"required,omitempty"`
	RequiredToNavigate bool              `json:"requiredToNavigate,omitempty" bson:"requiredToNavigate,omitempty"`
	Validation         []ValidationRule  `json:"validation,omitempty" bson:"validation,omitempty"`
	Options            []Option          `json:"options,omitempty" bson:"options,omitempty"`
	DefaultValue       any               `json:"defaultValue,omitempty" bson:"defaultValue,omitempty"`
	Conditional        *ConditionalLogic `json:"conditional,omitempty" bson:"conditional,omitempty"`
	SkipLogic          *SkipLogic        `json:"skipLogic,omitempty" bson:"skipLogic,omitempty"`
}

// Page groups questions. NextPageID overrides sequential forward navigation.
type Page struct {
	ID          string            `json:"id" bson:"id"`
	Title       string            `json:"title,omitempty" bson:"title,omitempty"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question        `json:"questions" bson:"questions"`
	Conditional *ConditionalLogic `json:"conditional,omitempty" bson:"conditional,omitempty"`
	NextPageID  string            `json:"nextPageId,omitempty" bson:"nextPageId,omitempty"`
}

// Group organizes pages within a stage
type Group struct {
	ID          string            `json:"id" bson:"id"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Pages       []Page            `json:"pages" bson:"pages"`
	Conditional *ConditionalLogic `json:"conditional,omitempty" bson:"conditional,omitempty"`
}

// Stage is a top-level section of the survey
type Stage struct {
	ID          string            `json:"id" bson:"id"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Groups      []Group           `json:"groups" bson:"groups"`
	Conditional *ConditionalLogic `json:"conditional,omitempty" bson:"conditional,omitempty"`
}

// OrderPolicy controls whether navigation across siblings is gated on
// prefix completion or open
type OrderPolicy string

const (
	OrderSequential OrderPolicy = "sequential"
	OrderFree       OrderPolicy = "free"
)

// NavigationConfig holds the three independent policy axes. An empty axis
// means sequential.
type NavigationConfig struct {
	StageOrder OrderPolicy `json:"stageOrder,omitempty" bson:"stageOrder,omitempty"`
	GroupOrder OrderPolicy `json:"groupOrder,omitempty" bson:"groupOrder,omitempty"`
	PageOrder  OrderPolicy `json:"pageOrder,omitempty" bson:"pageOrder,omitempty"`
}

// SurveyConfig is the root survey document, immutable for the lifetime of a
// session
type SurveyConfig struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	HostID      string            `json:"hostId,omitempty" bson:"hostId,omitempty"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Stages      []Stage           `json:"stages" bson:"stages"`
	Navigation  *NavigationConfig `json:"navigation,omitempty" bson:"navigation,omitempty"`
	CreatedAt   time.Time         `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// NavigationPolicy returns the configured navigation axes, defaulting to
// sequential on every axis when unset
func (c *SurveyConfig) NavigationPolicy() NavigationConfig {
	if c.Navigation == nil {
		return NavigationConfig{}
	}
	return *c.Navigation
}
