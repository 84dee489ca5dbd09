package model

// SurveyState is the mutable per-session state owned by the engine.
// CurrentPageIndex indexes the full unfiltered page sequence, not the
// visible one.
type SurveyState struct {
	CurrentPageIndex int                 `json:"currentPageIndex" bson:"currentPageIndex"`
	Answers          Answers             `json:"answers" bson:"answers"`
	Errors           map[string][]string `json:"errors" bson:"errors"`
	IsSubmitted      bool                `json:"isSubmitted" bson:"isSubmitted"`
}

// NewSurveyState returns an empty state positioned on the first page
func NewSurveyState() *SurveyState {
	return &SurveyState{
		Answers: make(Answers),
		Errors:  make(map[string][]string),
	}
}
