package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"complyq/internal/model"
	"complyq/internal/service"
)

// EnhanceHandler handles AI writing-assistance endpoints
type EnhanceHandler struct {
	assistSvc *service.AssistService
}

// NewEnhanceHandler creates a new enhancement handler
func NewEnhanceHandler(assistSvc *service.AssistService) *EnhanceHandler {
	return &EnhanceHandler{assistSvc: assistSvc}
}

// Enhance handles POST /v1/assist/enhance
func (h *EnhanceHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req model.EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		writeError(w, http.StatusBadRequest, "user_input is required")
		return
	}

	result, err := h.assistSvc.EnhanceAnswer(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Suggest handles POST /v1/assist/suggestions
func (h *EnhanceHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	result, err := h.assistSvc.Suggest(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Health handles GET /v1/assist/health
func (h *EnhanceHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assistSvc.Health(r.Context()))
}
