package engine

import "surveyflow/internal/model"

// LatestAccessiblePageIndex returns the highest page index the respondent
// may visit, expressed in the full unfiltered flattened index space.
//
// Under free page order every visible page is open and the index of the last
// visible page is returned. Under sequential order (the default) a visible
// page is accessible iff every visible page before it is complete; the first
// page is always accessible. With no visible pages the result is 0.
func LatestAccessiblePageIndex(cfg *model.SurveyConfig, nav model.NavigationConfig, answers model.Answers) int {
	visible := VisibleFlattened(cfg, answers)
	if len(visible) == 0 {
		return 0
	}

	all := Flatten(cfg)

	if nav.PageOrder == model.OrderFree {
		return fullIndexOf(all, visible[len(visible)-1].ID)
	}

	latest := 0
	for i := 1; i < len(visible); i++ {
		if !pageComplete(visible[i-1], answers) {
			break
		}
		latest = i
	}
	return fullIndexOf(all, visible[latest].ID)
}

// CanNavigateToStage applies the stage-order policy: free stage order admits
// any visible stage; sequential requires every earlier visible stage to be
// complete. An unknown or hidden stage is never navigable.
func CanNavigateToStage(cfg *model.SurveyConfig, nav model.NavigationConfig, stageID string, answers model.Answers) bool {
	visible := VisibleStages(cfg, answers)
	target := -1
	for i, s := range visible {
		if s.ID == stageID {
			target = i
			break
		}
	}
	if target < 0 {
		return false
	}
	if nav.StageOrder == model.OrderFree {
		return true
	}
	for i := 0; i < target; i++ {
		if !IsStageComplete(visible[i], answers) {
			return false
		}
	}
	return true
}

// CanNavigateToGroup applies the group-order policy within a stage,
// independently of the stage and page axes
func CanNavigateToGroup(cfg *model.SurveyConfig, nav model.NavigationConfig, stageID, groupID string, answers model.Answers) bool {
	var stage *model.Stage
	for _, s := range VisibleStages(cfg, answers) {
		if s.ID == stageID {
			stage = s
			break
		}
	}
	if stage == nil {
		return false
	}

	visible := VisibleGroups(stage, answers)
	target := -1
	for i, g := range visible {
		if g.ID == groupID {
			target = i
			break
		}
	}
	if target < 0 {
		return false
	}
	if nav.GroupOrder == model.OrderFree {
		return true
	}
	for i := 0; i < target; i++ {
		if !IsGroupComplete(visible[i], answers) {
			return false
		}
	}
	return true
}

// fullIndexOf maps a page id back into the full flattened index space,
// clamping to 0 for ids that are not present
func fullIndexOf(all []*model.Page, pageID string) int {
	if i := pageIndexOf(all, pageID); i >= 0 {
		return i
	}
	return 0
}
