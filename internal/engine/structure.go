package engine

import "surveyflow/internal/model"

// Location identifies where a page sits in the stage/group/page tree
type Location struct {
	StageIndex int
	GroupIndex int
	PageIndex  int
	Stage      *model.Stage
	Group      *model.Group
	Page       *model.Page
}

// Flatten concatenates all pages depth-first in stage -> group -> page
// declaration order. This is the canonical page ordering used by the
// accessibility gate, next-page resolution and index arithmetic.
func Flatten(cfg *model.SurveyConfig) []*model.Page {
	var pages []*model.Page
	for si := range cfg.Stages {
		stage := &cfg.Stages[si]
		for gi := range stage.Groups {
			group := &stage.Groups[gi]
			for pi := range group.Pages {
				pages = append(pages, &group.Pages[pi])
			}
		}
	}
	return pages
}

// FindPageByID locates a page anywhere in the tree. The second return is
// false for an unknown id; the engine never invents a page.
func FindPageByID(cfg *model.SurveyConfig, pageID string) (*model.Page, bool) {
	for si := range cfg.Stages {
		for gi := range cfg.Stages[si].Groups {
			group := &cfg.Stages[si].Groups[gi]
			for pi := range group.Pages {
				if group.Pages[pi].ID == pageID {
					return &group.Pages[pi], true
				}
			}
		}
	}
	return nil, false
}

// Locate returns the stage, group and page holding pageID together with
// their declaration indexes
func Locate(cfg *model.SurveyConfig, pageID string) (Location, bool) {
	for si := range cfg.Stages {
		stage := &cfg.Stages[si]
		for gi := range stage.Groups {
			group := &stage.Groups[gi]
			for pi := range group.Pages {
				if group.Pages[pi].ID == pageID {
					return Location{
						StageIndex: si,
						GroupIndex: gi,
						PageIndex:  pi,
						Stage:      stage,
						Group:      group,
						Page:       &group.Pages[pi],
					}, true
				}
			}
		}
	}
	return Location{}, false
}

// pageIndexOf returns the position of pageID within the flattened sequence,
// or -1 when absent
func pageIndexOf(pages []*model.Page, pageID string) int {
	for i, p := range pages {
		if p.ID == pageID {
			return i
		}
	}
	return -1
}
