package service

import (
	"context"
	"errors"

	"complyq/internal/model"
	"complyq/internal/repository"
	"complyq/internal/schema"
)

// ErrProjectNotFound is returned when a project id is not in the
// directory
var ErrProjectNotFound = errors.New("project not found")

// ProjectService exposes the read-only project/audit directory and the
// auto-section completeness signal derived from it.
type ProjectService struct {
	projectRepo  repository.ProjectRepo
	artifactRepo repository.ArtifactRepo
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepo, artifactRepo repository.ArtifactRepo) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		artifactRepo: artifactRepo,
	}
}

// Get returns directory metadata for a project
func (s *ProjectService) Get(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// List returns all projects in the directory
func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	return s.projectRepo.List(ctx)
}

// Artifacts returns the audit-directory records for a project
func (s *ProjectService) Artifacts(ctx context.Context, projectID string) ([]*model.Artifact, error) {
	return s.artifactRepo.GetByProjectID(ctx, projectID)
}

// AutoSectionSignal implements AutoSectionSource: at least one
// registered model/dataset record marks the fixed auto-section set
// complete; none means the empty set.
func (s *ProjectService) AutoSectionSignal(ctx context.Context, projectID string) ([]int, error) {
	count, err := s.artifactRepo.CountByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []int{}, nil
	}
	return schema.AutoSectionNumbers(), nil
}
