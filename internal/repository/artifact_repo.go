package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"complyq/internal/model"
)

// ArtifactRepo handles MongoDB operations for model/dataset records in
// the audit directory
type ArtifactRepo interface {
	Create(ctx context.Context, artifact *model.Artifact) (string, error)
	GetByProjectID(ctx context.Context, projectID string) ([]*model.Artifact, error)
	CountByProjectID(ctx context.Context, projectID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type artifactRepo struct {
	collection *mongo.Collection
}

// NewArtifactRepo creates a new artifact repository
func NewArtifactRepo(db *mongo.Database) ArtifactRepo {
	return &artifactRepo{
		collection: db.Collection("artifacts"),
	}
}

func (r *artifactRepo) Create(ctx context.Context, artifact *model.Artifact) (string, error) {
	if artifact.ID == "" {
		artifact.ID = uuid.New().String()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, artifact); err != nil {
		return "", err
	}
	return artifact.ID, nil
}

func (r *artifactRepo) GetByProjectID(ctx context.Context, projectID string) ([]*model.Artifact, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var artifacts []*model.Artifact
	if err := cursor.All(ctx, &artifacts); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (r *artifactRepo) CountByProjectID(ctx context.Context, projectID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"projectId": projectID})
}

func (r *artifactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
