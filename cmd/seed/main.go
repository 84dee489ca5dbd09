package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"surveyflow/internal/engine"
	"surveyflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "surveyflow"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	surveyColl := db.Collection("surveys")

	cfg := demoConfig()
	if err := engine.CheckConfig(cfg); err != nil {
		log.Fatalf("Seed config is invalid: %v", err)
	}

	// Replace any previous seed so the command is re-runnable
	if _, err := surveyColl.DeleteOne(ctx, bson.M{"_id": cfg.ID}); err != nil {
		log.Fatalf("Failed to clear previous seed: %v", err)
	}
	if _, err := surveyColl.InsertOne(ctx, cfg); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}

	fmt.Printf("Seeded survey %q (%s)\n", cfg.Title, cfg.ID)
	fmt.Printf("Start a session: POST /v1/surveys/%s/sessions\n", cfg.ID)
}

func demoConfig() *model.SurveyConfig {
	now := time.Now()
	return &model.SurveyConfig{
		ID:          "demo-onboarding",
		HostID:      "host_demo",
		Title:       "Product Onboarding Survey",
		Description: "Collects account details, role-specific follow-ups and final feedback.",
		Navigation: &model.NavigationConfig{
			StageOrder: model.OrderSequential,
			GroupOrder: model.OrderSequential,
			PageOrder:  model.OrderSequential,
		},
		CreatedAt: now,
		UpdatedAt: now,
		Stages: []model.Stage{
			{
				ID:    "stage-profile",
				Title: "Profile",
				Groups: []model.Group{
					{
						ID:    "group-basics",
						Title: "Basics",
						Pages: []model.Page{
							{
								ID:    "page-identity",
								Title: "About you",
								Questions: []model.Question{
									{
										ID:                 "full-name",
										Type:               model.QuestionText,
										Label:              "Full name",
										Required:           true,
										RequiredToNavigate: true,
										Validation: []model.ValidationRule{
											{Type: model.RuleMin, Value: 2},
										},
									},
									{
										ID:       "work-email",
										Type:     model.QuestionEmail,
										Label:    "Work email",
										Required: true,
										Validation: []model.ValidationRule{
											{
												Type:    model.RulePattern,
												Value:   `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
												Message: "Enter a valid email address",
											},
										},
									},
								},
							},
							{
								ID:    "page-role",
								Title: "Your role",
								Questions: []model.Question{
									{
										ID:                 "role",
										Type:               model.QuestionRadio,
										Label:              "What best describes your role?",
										Required:           true,
										RequiredToNavigate: true,
										Options: []model.Option{
											{Value: "engineer", Label: "Engineer"},
											{Value: "manager", Label: "Manager"},
											{Value: "other", Label: "Other"},
										},
										SkipLogic: &model.SkipLogic{
											Conditions: []model.Condition{
												{QuestionID: "role", Operator: model.OpEquals, Value: "other"},
											},
											NextPageID: "page-feedback",
										},
									},
								},
							},
						},
					},
					{
						ID:    "group-team",
						Title: "Team details",
						Conditional: &model.ConditionalLogic{
							Conditions: []model.Condition{
								{QuestionID: "role", Operator: model.OpNotEquals, Value: "other"},
							},
						},
						Pages: []model.Page{
							{
								ID:    "page-team",
								Title: "Team",
								Questions: []model.Question{
									{
										ID:    "team-size",
										Type:  model.QuestionNumber,
										Label: "Team size",
									},
									{
										ID:    "direct-reports",
										Type:  model.QuestionNumber,
										Label: "Direct reports",
										Conditional: &model.ConditionalLogic{
											Conditions: []model.Condition{
												{QuestionID: "role", Operator: model.OpEquals, Value: "manager"},
											},
										},
										Validation: []model.ValidationRule{
											{
												Type:       model.RuleCrossQuestion,
												QuestionID: "team-size",
												Operator:   model.OpLessThanOrEqual,
											},
										},
									},
								},
							},
						},
					},
				},
			},
			{
				ID:    "stage-feedback",
				Title: "Feedback",
				Groups: []model.Group{
					{
						ID:    "group-feedback",
						Title: "Final thoughts",
						Pages: []model.Page{
							{
								ID:    "page-feedback",
								Title: "Feedback",
								Questions: []model.Question{
									{
										ID:    "channels",
										Type:  model.QuestionCheckbox,
										Label: "Where did you hear about us?",
										Options: []model.Option{
											{Value: "search", Label: "Search"},
											{Value: "friend", Label: "A friend"},
											{Value: "social", Label: "Social media"},
										},
									},
									{
										ID:          "comments",
										Type:        model.QuestionTextarea,
										Label:       "Anything else?",
										Placeholder: "Optional",
										Validation: []model.ValidationRule{
											{Type: model.RuleMax, Value: 500},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
