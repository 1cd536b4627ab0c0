package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"complyq/internal/model"
	"complyq/internal/service"
)

// ProjectHandler handles project directory endpoints
type ProjectHandler struct {
	projectSvc *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectSvc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// List handles GET /v1/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get handles GET /v1/projects/{projectId}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	project, err := h.projectSvc.Get(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Artifacts handles GET /v1/projects/{projectId}/artifacts
func (h *ProjectHandler) Artifacts(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	artifacts, err := h.projectSvc.Artifacts(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artifacts == nil {
		artifacts = []*model.Artifact{}
	}
	writeJSON(w, http.StatusOK, artifacts)
}
