package engine

import "surveyflow/internal/model"

// Status is the completion state of a page, group or stage
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusEmpty    Status = "empty"
)

// PageStatus computes a page's completion status from its visible questions.
//
// The rule is two-tier: when the page has at least one visible
// requiredToNavigate question, completeness is strict (every such question
// must be valid for navigation); otherwise any answered visible question
// counts toward the lenient complete/partial/empty split.
func PageStatus(cfg *model.SurveyConfig, pageID string, answers model.Answers) Status {
	page, ok := FindPageByID(cfg, pageID)
	if !ok {
		return StatusEmpty
	}
	return pageStatus(page, answers)
}

func pageStatus(page *model.Page, answers model.Answers) Status {
	visible := VisibleQuestions(page, answers)
	if len(visible) == 0 {
		return StatusEmpty
	}

	var gated []*model.Question
	answered := 0
	for _, q := range visible {
		if q.RequiredToNavigate {
			gated = append(gated, q)
		}
		if !model.IsEmptyValue(answers[q.ID]) {
			answered++
		}
	}

	if len(gated) > 0 {
		complete := true
		for _, q := range gated {
			if !IsValidForNavigation(q, answers[q.ID], answers) {
				complete = false
				break
			}
		}
		if complete {
			return StatusComplete
		}
		if answered > 0 {
			return StatusPartial
		}
		return StatusEmpty
	}

	switch {
	case answered == len(visible):
		return StatusComplete
	case answered > 0:
		return StatusPartial
	default:
		return StatusEmpty
	}
}

// IsPageComplete is the stricter gate used for accessibility: true iff every
// visible requiredToNavigate question on the page is valid for navigation.
// A page with no such questions is vacuously complete.
func IsPageComplete(cfg *model.SurveyConfig, pageID string, answers model.Answers) bool {
	page, ok := FindPageByID(cfg, pageID)
	if !ok {
		return false
	}
	return pageComplete(page, answers)
}

func pageComplete(page *model.Page, answers model.Answers) bool {
	for _, q := range VisibleQuestions(page, answers) {
		if !q.RequiredToNavigate {
			continue
		}
		if !IsValidForNavigation(q, answers[q.ID], answers) {
			return false
		}
	}
	return true
}

// IsGroupComplete reports whether every visible page in the group is complete
func IsGroupComplete(g *model.Group, answers model.Answers) bool {
	for _, p := range VisiblePages(g, answers) {
		if !pageComplete(p, answers) {
			return false
		}
	}
	return true
}

// IsStageComplete reports whether every visible group in the stage is complete
func IsStageComplete(s *model.Stage, answers model.Answers) bool {
	for _, g := range VisibleGroups(s, answers) {
		if !IsGroupComplete(g, answers) {
			return false
		}
	}
	return true
}
