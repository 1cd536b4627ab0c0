package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"complyq/internal/service"
)

// ReportHandler handles compliance report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Generate handles POST /v1/projects/{projectId}/report
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	report, err := h.reportSvc.Generate(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// Get handles GET /v1/projects/{projectId}/report
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	report, err := h.reportSvc.Get(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetHTML handles GET /v1/projects/{projectId}/report/html and serves
// the rendered document directly for viewing or download
func (h *ReportHandler) GetHTML(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	report, err := h.reportSvc.Get(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil || report.HTML == "" {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.HTML))
}

// Status handles GET /v1/projects/{projectId}/report/status
func (h *ReportHandler) Status(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	generated, at := h.reportSvc.Status(r.Context(), projectID)
	resp := map[string]interface{}{"generated": generated}
	if !at.IsZero() {
		resp["timestamp"] = at.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAnalyses handles GET /v1/analyses
func (h *ReportHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.reportSvc.ListAnalyses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}
