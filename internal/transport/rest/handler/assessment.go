package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"complyq/internal/model"
	"complyq/internal/schema"
	"complyq/internal/service"
)

// AssessmentHandler handles questionnaire endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// AssessmentResponse bundles the record with its derived metrics and
// the last-saved indicator
type AssessmentResponse struct {
	Record    *model.AssessmentRecord `json:"record"`
	Metrics   model.DerivedMetrics    `json:"metrics"`
	LastSaved string                  `json:"lastSaved,omitempty"`
}

// UpdateFieldRequest is the request body for a field update
type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// RefreshRequest carries the client's in-memory record for
// last-write-wins reconciliation against storage
type RefreshRequest struct {
	Record *model.AssessmentRecord `json:"record"`
}

func (h *AssessmentHandler) respond(w http.ResponseWriter, r *http.Request, record *model.AssessmentRecord) {
	resp := AssessmentResponse{
		Record:  record,
		Metrics: record.Metrics(),
	}
	if at := h.assessmentSvc.LastSaved(r.Context(), record.ProjectID); !at.IsZero() {
		resp.LastSaved = at.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/assessments/{projectId}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	record := h.assessmentSvc.Load(r.Context(), projectID)
	record = h.assessmentSvc.ApplySignal(r.Context(), record)
	h.respond(w, r, record)
}

// UpdateField handles PUT /v1/assessments/{projectId}/fields
func (h *AssessmentHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record := h.assessmentSvc.Load(r.Context(), projectID)
	record, err := h.assessmentSvc.UpdateField(r.Context(), record, req.Field, req.Value)
	if err != nil {
		if errors.Is(err, model.ErrUnknownField) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respond(w, r, record)
}

// Refresh handles POST /v1/assessments/{projectId}/refresh
func (h *AssessmentHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Record == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Record.ProjectID = projectID
	req.Record.Normalize()

	record := h.assessmentSvc.Refresh(r.Context(), req.Record)
	h.respond(w, r, record)
}

// Progress handles GET /v1/assessments/{projectId}/progress
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	record := h.assessmentSvc.Load(r.Context(), projectID)
	record = h.assessmentSvc.ApplySignal(r.Context(), record)
	writeJSON(w, http.StatusOK, record.Metrics())
}

// Reset handles POST /v1/assessments/{projectId}/reset. Destructive
// and not undoable; requires the explicit confirm flag.
func (h *AssessmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "reset requires confirm=true")
		return
	}

	record := h.assessmentSvc.Reset(r.Context(), projectID)
	h.respond(w, r, record)
}

// Schema handles GET /v1/assessments/schema
func (h *AssessmentHandler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections":         schema.Sections(),
		"userFieldCount":   schema.UserFieldCount(),
		"autoSectionSlots": schema.AutoSectionSlots(),
	})
}
