package repository

import (
	"context"
	"time"

	"surveyflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SurveyRepo handles MongoDB operations for survey configs
type SurveyRepo interface {
	Create(ctx context.Context, cfg *model.SurveyConfig) (string, error)
	GetByID(ctx context.Context, id string) (*model.SurveyConfig, error)
	GetByHostID(ctx context.Context, hostID string) ([]*model.SurveyConfig, error)
	Update(ctx context.Context, cfg *model.SurveyConfig) error
	Delete(ctx context.Context, id string) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey config repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) Create(ctx context.Context, cfg *model.SurveyConfig) (string, error) {
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, cfg)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return cfg.ID, nil
	}
	return oid.Hex(), nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyConfig, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}

	var cfg model.SurveyConfig
	err = r.collection.FindOne(ctx, filter).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cfg.ID = id
	return &cfg, nil
}

func (r *surveyRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.SurveyConfig, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.SurveyConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *surveyRepo) Update(ctx context.Context, cfg *model.SurveyConfig) error {
	filter, err := idFilter(cfg.ID)
	if err != nil {
		return err
	}

	cfg.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, filter, cfg)
	return err
}

func (r *surveyRepo) Delete(ctx context.Context, id string) error {
	filter, err := idFilter(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, filter)
	return err
}

// idFilter accepts both ObjectID hex strings and plain string ids so seeded
// configs with readable ids keep working
func idFilter(id string) (bson.M, error) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}, nil
	}
	return bson.M{"_id": id}, nil
}
