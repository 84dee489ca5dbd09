package engine

import "surveyflow/internal/model"

// EntityRef is a lightweight reference to a stage or group in the read model
type EntityRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Snapshot is the derived read model a presentation layer consumes. It is
// recomputed from config plus state on every call and never aliases mutable
// engine internals except the config tree itself.
type Snapshot struct {
	CurrentPageIndex      int                 `json:"currentPageIndex"`
	CurrentPage           *model.Page         `json:"currentPage,omitempty"`
	CurrentStage          *EntityRef          `json:"currentStage,omitempty"`
	CurrentGroup          *EntityRef          `json:"currentGroup,omitempty"`
	VisiblePageIDs        []string            `json:"visiblePageIds"`
	VisibleQuestionIDs    []string            `json:"visibleQuestionIds,omitempty"`
	LatestAccessibleIndex int                 `json:"latestAccessibleIndex"`
	PageStatus            map[string]Status   `json:"pageStatus"`
	Answers               model.Answers       `json:"answers"`
	Errors                map[string][]string `json:"errors"`
	IsSubmitted           bool                `json:"isSubmitted"`
	IsFirstPage           bool                `json:"isFirstPage"`
	IsLastPage            bool                `json:"isLastPage"`
	Progress              float64             `json:"progress"`
	StageProgress         float64             `json:"stageProgress"`
	GroupProgress         float64             `json:"groupProgress"`
}

// Snapshot projects the current read model
func (e *Engine) Snapshot() Snapshot {
	st := e.state
	answers := st.Answers
	visible := VisibleFlattened(e.cfg, answers)

	snap := Snapshot{
		CurrentPageIndex:      st.CurrentPageIndex,
		CurrentPage:           e.CurrentPage(),
		LatestAccessibleIndex: LatestAccessiblePageIndex(e.cfg, e.nav, answers),
		PageStatus:            make(map[string]Status, len(visible)),
		Answers:               answers.Clone(),
		Errors:                cloneErrors(st.Errors),
		IsSubmitted:           st.IsSubmitted,
	}

	visibleIndex := -1
	for i, p := range visible {
		snap.VisiblePageIDs = append(snap.VisiblePageIDs, p.ID)
		snap.PageStatus[p.ID] = pageStatus(p, answers)
		if snap.CurrentPage != nil && p.ID == snap.CurrentPage.ID {
			visibleIndex = i
		}
	}

	if snap.CurrentPage != nil {
		for _, q := range VisibleQuestions(snap.CurrentPage, answers) {
			snap.VisibleQuestionIDs = append(snap.VisibleQuestionIDs, q.ID)
		}
		if loc, ok := Locate(e.cfg, snap.CurrentPage.ID); ok {
			snap.CurrentStage = &EntityRef{ID: loc.Stage.ID, Title: loc.Stage.Title}
			snap.CurrentGroup = &EntityRef{ID: loc.Group.ID, Title: loc.Group.Title}
			snap.StageProgress = completionRatio(stagePages(loc.Stage, answers), answers)
			snap.GroupProgress = completionRatio(VisiblePages(loc.Group, answers), answers)
		}
	}

	snap.IsFirstPage = visibleIndex <= 0
	snap.IsLastPage = len(visible) == 0 || visibleIndex == len(visible)-1
	if len(visible) > 0 && visibleIndex >= 0 {
		snap.Progress = float64(visibleIndex+1) / float64(len(visible)) * 100
	}

	return snap
}

func stagePages(s *model.Stage, answers model.Answers) []*model.Page {
	var pages []*model.Page
	for _, g := range VisibleGroups(s, answers) {
		pages = append(pages, VisiblePages(g, answers)...)
	}
	return pages
}

// completionRatio is the percentage of visible pages that are complete
func completionRatio(pages []*model.Page, answers model.Answers) float64 {
	if len(pages) == 0 {
		return 0
	}
	done := 0
	for _, p := range pages {
		if pageComplete(p, answers) {
			done++
		}
	}
	return float64(done) / float64(len(pages)) * 100
}

func cloneErrors(errs map[string][]string) map[string][]string {
	out := make(map[string][]string, len(errs))
	for k, v := range errs {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
