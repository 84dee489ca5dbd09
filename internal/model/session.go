package model

import "time"

// Session binds one respondent's engine state to a survey config
type Session struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	SurveyID  string       `json:"surveyId" bson:"surveyId"`
	State     *SurveyState `json:"state" bson:"state"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}
