package model

import "time"

// ProjectStatus tracks where a project is in its compliance lifecycle
type ProjectStatus string

const (
	ProjectStatusDraft    ProjectStatus = "draft"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Project is read-only directory metadata for an AI system under
// assessment
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Status      ProjectStatus `json:"status" bson:"status"`
	OwnerTeam   string        `json:"ownerTeam,omitempty" bson:"ownerTeam,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ArtifactKind is the type of record registered for a project in the
// audit directory
type ArtifactKind string

const (
	ArtifactModel      ArtifactKind = "model"
	ArtifactDataset    ArtifactKind = "dataset"
	ArtifactEvaluation ArtifactKind = "evaluation"
)

// Artifact is a model/dataset/evaluation record attached to a project.
// Presence of at least one artifact is the signal that marks the
// auto-completed questionnaire sections done.
type Artifact struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	ProjectID string       `json:"projectId" bson:"projectId"`
	Kind      ArtifactKind `json:"kind" bson:"kind"`
	Name      string       `json:"name" bson:"name"`
	URI       string       `json:"uri,omitempty" bson:"uri,omitempty"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}
