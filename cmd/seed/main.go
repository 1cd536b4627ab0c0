package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"complyq/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "complyqdb"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	projectColl := db.Collection("projects")
	artifactColl := db.Collection("artifacts")

	now := time.Now().UTC()

	projects := []model.Project{
		{
			ID:          uuid.New().String(),
			Name:        "Customer Churn Predictor",
			Description: "Gradient-boosted model scoring subscriber churn risk for the retention team.",
			Status:      model.ProjectStatusActive,
			OwnerTeam:   "Growth Analytics",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Support Ticket Triage Assistant",
			Description: "LLM-based classifier routing inbound support tickets by urgency and topic.",
			Status:      model.ProjectStatusActive,
			OwnerTeam:   "Customer Operations",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Invoice Fraud Screening",
			Description: "Anomaly detection over vendor invoices. Not yet in production.",
			Status:      model.ProjectStatusDraft,
			OwnerTeam:   "Finance Engineering",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	for _, p := range projects {
		if _, err := projectColl.InsertOne(ctx, p); err != nil {
			log.Fatalf("Failed to insert project %s: %v", p.Name, err)
		}
		fmt.Printf("Seeded project: %s (%s)\n", p.Name, p.ID)
	}

	// The churn predictor gets registered artifacts so its auto
	// sections show up as completed. The others start empty.
	artifacts := []model.Artifact{
		{
			ID:        uuid.New().String(),
			ProjectID: projects[0].ID,
			Kind:      model.ArtifactModel,
			Name:      "churn-xgb-v4",
			URI:       "s3://ml-registry/churn/xgb-v4",
			CreatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			ProjectID: projects[0].ID,
			Kind:      model.ArtifactDataset,
			Name:      "subscriber-events-2026q2",
			URI:       "s3://ml-datasets/subscriber-events/2026q2",
			CreatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			ProjectID: projects[0].ID,
			Kind:      model.ArtifactEvaluation,
			Name:      "holdout-auc-report",
			CreatedAt: now,
		},
	}

	for _, a := range artifacts {
		if _, err := artifactColl.InsertOne(ctx, a); err != nil {
			log.Fatalf("Failed to insert artifact %s: %v", a.Name, err)
		}
		fmt.Printf("Seeded artifact: %s -> %s\n", a.Kind, a.Name)
	}

	fmt.Println("Seed complete")
}
