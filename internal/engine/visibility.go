package engine

import "surveyflow/internal/model"

// Visibility is a pure projection over the immutable config tree. Every
// function here recomputes from the answer map on each call, since any
// condition may reference any question; nothing is cached incrementally.
// Filtering always preserves declaration order.

// StageVisible reports whether a stage's conditional holds
func StageVisible(s *model.Stage, answers model.Answers) bool {
	return evaluateConditional(s.Conditional, answers)
}

// GroupVisible reports whether a group's conditional holds
func GroupVisible(g *model.Group, answers model.Answers) bool {
	return evaluateConditional(g.Conditional, answers)
}

// PageVisible reports whether a page's conditional holds
func PageVisible(p *model.Page, answers model.Answers) bool {
	return evaluateConditional(p.Conditional, answers)
}

// QuestionVisible reports whether a question's conditional holds
func QuestionVisible(q *model.Question, answers model.Answers) bool {
	return evaluateConditional(q.Conditional, answers)
}

// VisibleStages filters the config's stages by their conditionals
func VisibleStages(cfg *model.SurveyConfig, answers model.Answers) []*model.Stage {
	var out []*model.Stage
	for i := range cfg.Stages {
		if StageVisible(&cfg.Stages[i], answers) {
			out = append(out, &cfg.Stages[i])
		}
	}
	return out
}

// VisibleGroups filters a stage's groups by their conditionals
func VisibleGroups(s *model.Stage, answers model.Answers) []*model.Group {
	var out []*model.Group
	for i := range s.Groups {
		if GroupVisible(&s.Groups[i], answers) {
			out = append(out, &s.Groups[i])
		}
	}
	return out
}

// VisiblePages filters a group's pages by their conditionals
func VisiblePages(g *model.Group, answers model.Answers) []*model.Page {
	var out []*model.Page
	for i := range g.Pages {
		if PageVisible(&g.Pages[i], answers) {
			out = append(out, &g.Pages[i])
		}
	}
	return out
}

// VisibleQuestions filters a page's questions by their conditionals
func VisibleQuestions(p *model.Page, answers model.Answers) []*model.Question {
	var out []*model.Question
	for i := range p.Questions {
		if QuestionVisible(&p.Questions[i], answers) {
			out = append(out, &p.Questions[i])
		}
	}
	return out
}

// VisibleFlattened flattens only the reachable part of the tree: pages of
// visible groups of visible stages whose own conditionals hold, in
// declaration order
func VisibleFlattened(cfg *model.SurveyConfig, answers model.Answers) []*model.Page {
	var out []*model.Page
	for _, stage := range VisibleStages(cfg, answers) {
		for _, group := range VisibleGroups(stage, answers) {
			out = append(out, VisiblePages(group, answers)...)
		}
	}
	return out
}
