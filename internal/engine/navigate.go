package engine

import "surveyflow/internal/model"

// CurrentPage returns the page at the current full index, or nil when the
// config has no pages
func (e *Engine) CurrentPage() *model.Page {
	all := Flatten(e.cfg)
	if len(all) == 0 {
		return nil
	}
	idx := e.state.CurrentPageIndex
	if idx < 0 || idx >= len(all) {
		return nil
	}
	return all[idx]
}

// NextPage attempts forward navigation and reports whether the position
// advanced.
//
// Visible requiredToNavigate questions on the current page are validated
// first; any failure merges this page's errors into the error map (other
// pages' errors are preserved) and the engine stays put. On success the
// current page's question errors are cleared and the destination is
// resolved in priority order: skip-logic override, explicit nextPageId,
// next visible page in flattened order.
func (e *Engine) NextPage() bool {
	page := e.CurrentPage()
	if page == nil {
		return false
	}

	answers := e.state.Answers
	blocked := false
	for _, q := range VisibleQuestions(page, answers) {
		if !q.RequiredToNavigate {
			continue
		}
		errs := Validate(q, answers[q.ID], answers)
		if len(errs) > 0 {
			e.state.Errors[q.ID] = errs
			blocked = true
		} else {
			delete(e.state.Errors, q.ID)
		}
	}
	if blocked {
		e.persist()
		return false
	}

	for i := range page.Questions {
		delete(e.state.Errors, page.Questions[i].ID)
	}

	next := e.resolveNextIndex(page)
	if next == e.state.CurrentPageIndex {
		e.persist()
		return false
	}

	e.state.CurrentPageIndex = next
	e.persist()
	e.emitPageChanged()
	return true
}

// resolveNextIndex picks the destination page index for forward navigation
// from the given page, in the full flattened index space
func (e *Engine) resolveNextIndex(page *model.Page) int {
	all := Flatten(e.cfg)
	answers := e.state.Answers
	current := e.state.CurrentPageIndex

	// Bounded fallback used when a target id cannot be located.
	fallback := current + 1
	if fallback >= len(all) {
		fallback = current
	}

	// Skip-logic override: the first visible question whose conditions hold.
	for _, q := range VisibleQuestions(page, answers) {
		sl := q.SkipLogic
		if sl == nil {
			continue
		}
		if !EvaluateConditions(sl.Conditions, answers, sl.Logic) {
			continue
		}
		if i := pageIndexOf(all, sl.NextPageID); i >= 0 {
			return i
		}
		return fallback
	}

	// Explicit page-level override.
	if page.NextPageID != "" {
		if i := pageIndexOf(all, page.NextPageID); i >= 0 {
			return i
		}
		return fallback
	}

	// Next visible page after the current position in flattened order.
	visible := VisibleFlattened(e.cfg, answers)
	for i := current + 1; i < len(all); i++ {
		if pageIndexOf(visible, all[i].ID) >= 0 {
			return i
		}
	}
	return current
}

// PrevPage moves back one page unconditionally, bounded at the first page.
// No validation runs and no errors are cleared.
func (e *Engine) PrevPage() bool {
	if e.state.CurrentPageIndex == 0 {
		return false
	}
	e.state.CurrentPageIndex--
	e.persist()
	e.emitPageChanged()
	return true
}

// GoToStage jumps to the first visible page of the first visible group of
// the target stage. The stage-order policy is advisory metadata consulted
// through CanNavigateToStage; this mutator does not enforce it.
func (e *Engine) GoToStage(stageID string) error {
	answers := e.state.Answers
	for _, stage := range VisibleStages(e.cfg, answers) {
		if stage.ID != stageID {
			continue
		}
		for _, group := range VisibleGroups(stage, answers) {
			pages := VisiblePages(group, answers)
			if len(pages) == 0 {
				continue
			}
			if i := pageIndexOf(Flatten(e.cfg), pages[0].ID); i >= 0 {
				e.state.CurrentPageIndex = i
				e.persist()
				e.emitPageChanged()
				return nil
			}
		}
		return ErrStageNotFound
	}
	return ErrStageNotFound
}

func (e *Engine) emitPageChanged() {
	ev := Event{Type: EventPageChanged, PageIndex: e.state.CurrentPageIndex}
	if p := e.CurrentPage(); p != nil {
		ev.PageID = p.ID
	}
	e.emit(ev)
}
