package model

import "time"

// SubmissionMetadata is optional context recorded with a submission.
// UserAgent and CompletionTimeMS are only kept when consent was given.
type SubmissionMetadata struct {
	GDPRConsent      bool   `json:"gdprConsent" bson:"gdprConsent"`
	UserAgent        string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	CompletionTimeMS int64  `json:"completionTimeMs,omitempty" bson:"completionTimeMs,omitempty"`
}

// Submission is the final answer snapshot persisted after a successful submit
type Submission struct {
	ID        string             `json:"id" bson:"_id,omitempty"`
	SurveyID  string             `json:"surveyId" bson:"surveyId"`
	SessionID string             `json:"sessionId" bson:"sessionId"`
	Answers   Answers            `json:"answers" bson:"answers"`
	Metadata  SubmissionMetadata `json:"metadata" bson:"metadata"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
