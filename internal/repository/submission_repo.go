package repository

import (
	"context"
	"time"

	"surveyflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepo handles MongoDB operations for final answer snapshots
type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetBySurveyID(ctx context.Context, surveyID string, limit int64) ([]*model.Submission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	sub.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

// GetBySurveyID lists a survey's submissions, most recent first
func (r *submissionRepo) GetBySurveyID(ctx context.Context, surveyID string, limit int64) ([]*model.Submission, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
