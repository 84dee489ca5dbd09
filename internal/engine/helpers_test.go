package engine

import (
	"testing"

	"surveyflow/internal/model"
)

// linearConfig builds a single-stage, single-group survey with three plain
// pages: p1 (q1 requiredToNavigate), p2 (q2), p3 (q3).
func linearConfig() *model.SurveyConfig {
	return &model.SurveyConfig{
		ID:    "survey-linear",
		Title: "Linear",
		Stages: []model.Stage{
			{
				ID:    "s1",
				Title: "Stage One",
				Groups: []model.Group{
					{
						ID:    "g1",
						Title: "Group One",
						Pages: []model.Page{
							{
								ID: "p1",
								Questions: []model.Question{
									{ID: "q1", Type: model.QuestionText, Label: "Your name", RequiredToNavigate: true},
								},
							},
							{
								ID: "p2",
								Questions: []model.Question{
									{ID: "q2", Type: model.QuestionText, Label: "Your city"},
								},
							},
							{
								ID: "p3",
								Questions: []model.Question{
									{ID: "q3", Type: model.QuestionTextarea, Label: "Comments"},
								},
							},
						},
					},
				},
			},
		},
	}
}

// branchingConfig builds a two-stage survey exercising conditionals, skip
// logic and an explicit nextPageId:
//
//	stage s1 / group g1:
//	  p1: q1 (radio, requiredToNavigate, skip logic q1=="skip" -> p3)
//	  p2: q2, visible only when q1=="detail"
//	  p3: q3
//	stage s2 (visible only when q1!="skip") / group g2:
//	  p4: q4 (requiredToNavigate), page nextPageId -> p6
//	  p5: q5
//	  p6: q6
func branchingConfig() *model.SurveyConfig {
	return &model.SurveyConfig{
		ID:    "survey-branching",
		Title: "Branching",
		Stages: []model.Stage{
			{
				ID:    "s1",
				Title: "Intro",
				Groups: []model.Group{
					{
						ID:    "g1",
						Title: "Basics",
						Pages: []model.Page{
							{
								ID: "p1",
								Questions: []model.Question{
									{
										ID:                 "q1",
										Type:               model.QuestionRadio,
										Label:              "Mode",
										RequiredToNavigate: true,
										Options: []model.Option{
											{Label: "Detail", Value: "detail"},
											{Label: "Skip ahead", Value: "skip"},
											{Label: "Normal", Value: "normal"},
										},
										SkipLogic: &model.SkipLogic{
											Conditions: []model.Condition{{QuestionID: "q1", Operator: model.OpEquals, Value: "skip"}},
											NextPageID: "p3",
										},
									},
								},
							},
							{
								ID: "p2",
								Conditional: &model.ConditionalLogic{
									Conditions: []model.Condition{{QuestionID: "q1", Operator: model.OpEquals, Value: "detail"}},
								},
								Questions: []model.Question{
									{ID: "q2", Type: model.QuestionText, Label: "Details"},
								},
							},
							{
								ID: "p3",
								Questions: []model.Question{
									{ID: "q3", Type: model.QuestionText, Label: "Summary"},
								},
							},
						},
					},
				},
			},
			{
				ID:    "s2",
				Title: "Deep dive",
				Conditional: &model.ConditionalLogic{
					Conditions: []model.Condition{{QuestionID: "q1", Operator: model.OpNotEquals, Value: "skip"}},
				},
				Groups: []model.Group{
					{
						ID:    "g2",
						Title: "Follow up",
						Pages: []model.Page{
							{
								ID:         "p4",
								NextPageID: "p6",
								Questions: []model.Question{
									{ID: "q4", Type: model.QuestionText, Label: "Why", RequiredToNavigate: true},
								},
							},
							{
								ID: "p5",
								Questions: []model.Question{
									{ID: "q5", Type: model.QuestionText, Label: "Optional extra"},
								},
							},
							{
								ID: "p6",
								Questions: []model.Question{
									{ID: "q6", Type: model.QuestionText, Label: "Closing"},
								},
							},
						},
					},
				},
			},
		},
	}
}

func mustEngine(t *testing.T, cfg *model.SurveyConfig) *Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
