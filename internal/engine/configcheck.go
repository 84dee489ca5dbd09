package engine

import (
	"errors"
	"fmt"
	"strings"

	"surveyflow/internal/model"
)

// ErrInvalidConfig wraps all structural problems found in a survey config
var ErrInvalidConfig = errors.New("invalid survey config")

// CheckConfig validates a survey config's structure at load time so that
// lookup misses surface as config errors rather than navigation-time
// surprises. It verifies id uniqueness across stages, groups, pages and
// questions, that every condition and cross-question rule references a known
// question, that every navigation target exists, and that choice questions
// carry options.
func CheckConfig(cfg *model.SurveyConfig) error {
	var problems []string

	if len(cfg.Stages) == 0 {
		problems = append(problems, "config has no stages")
	}

	ids := make(map[string]string) // id -> kind
	questionIDs := make(map[string]bool)
	pageIDs := make(map[string]bool)

	declare := func(kind, id string) {
		if id == "" {
			problems = append(problems, fmt.Sprintf("%s with empty id", kind))
			return
		}
		if prev, dup := ids[id]; dup {
			problems = append(problems, fmt.Sprintf("duplicate id %q (%s and %s)", id, prev, kind))
			return
		}
		ids[id] = kind
	}

	for si := range cfg.Stages {
		stage := &cfg.Stages[si]
		declare("stage", stage.ID)
		for gi := range stage.Groups {
			group := &stage.Groups[gi]
			declare("group", group.ID)
			for pi := range group.Pages {
				page := &group.Pages[pi]
				declare("page", page.ID)
				pageIDs[page.ID] = true
				for qi := range page.Questions {
					q := &page.Questions[qi]
					declare("question", q.ID)
					questionIDs[q.ID] = true
					if q.Type.IsChoice() && len(q.Options) == 0 {
						problems = append(problems, fmt.Sprintf("question %q is %s but has no options", q.ID, q.Type))
					}
				}
			}
		}
	}

	checkConditions := func(owner string, conditions []model.Condition) {
		for _, c := range conditions {
			if !questionIDs[c.QuestionID] {
				problems = append(problems, fmt.Sprintf("%s references unknown question %q", owner, c.QuestionID))
			}
		}
	}
	checkConditional := func(owner string, cl *model.ConditionalLogic) {
		if cl != nil {
			checkConditions(owner, cl.Conditions)
		}
	}

	for si := range cfg.Stages {
		stage := &cfg.Stages[si]
		checkConditional(fmt.Sprintf("stage %q conditional", stage.ID), stage.Conditional)
		for gi := range stage.Groups {
			group := &stage.Groups[gi]
			checkConditional(fmt.Sprintf("group %q conditional", group.ID), group.Conditional)
			for pi := range group.Pages {
				page := &group.Pages[pi]
				checkConditional(fmt.Sprintf("page %q conditional", page.ID), page.Conditional)
				if page.NextPageID != "" && !pageIDs[page.NextPageID] {
					problems = append(problems, fmt.Sprintf("page %q nextPageId targets unknown page %q", page.ID, page.NextPageID))
				}
				for qi := range page.Questions {
					q := &page.Questions[qi]
					checkConditional(fmt.Sprintf("question %q conditional", q.ID), q.Conditional)
					if q.SkipLogic != nil {
						checkConditions(fmt.Sprintf("question %q skip logic", q.ID), q.SkipLogic.Conditions)
						if !pageIDs[q.SkipLogic.NextPageID] {
							problems = append(problems, fmt.Sprintf("question %q skip logic targets unknown page %q", q.ID, q.SkipLogic.NextPageID))
						}
					}
					for _, rule := range q.Validation {
						switch rule.Type {
						case model.RuleCrossQuestion, model.RuleDateRange, model.RuleNumberRange:
							// comparison rules without a counterpart question
							// would silently never fire
							if rule.QuestionID == "" {
								problems = append(problems, fmt.Sprintf("question %q %s rule has no questionId", q.ID, rule.Type))
								continue
							}
						}
						if rule.QuestionID != "" && !questionIDs[rule.QuestionID] {
							problems = append(problems, fmt.Sprintf("question %q %s rule references unknown question %q", q.ID, rule.Type, rule.QuestionID))
						}
					}
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
