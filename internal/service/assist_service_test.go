package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"complyq/internal/config"
	"complyq/internal/model"
)

func disabledAssist() *AssistService {
	return NewAssistServiceWithConfig(&config.AIConfig{
		APIKey:    "",
		TimeoutMS: 1000,
	})
}

// geminiStub answers every generateContent call with the given inner
// JSON payload.
func geminiStub(t *testing.T, inner string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": inner}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func stubbedAssist(t *testing.T, srv *httptest.Server) *AssistService {
	t.Helper()
	return NewAssistServiceWithConfig(&config.AIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Models: config.GeminiModels{
			Enhance:   "m",
			Suggest:   "m",
			Narrative: "m",
		},
		TimeoutMS: 1000,
	})
}

func TestEnhanceAnswerMockWhenDisabled(t *testing.T) {
	svc := disabledAssist()
	result, err := svc.EnhanceAnswer(context.Background(), &model.EnhanceRequest{
		Question:  "Describe the AI system",
		UserInput: "a fraud model",
	})
	if err != nil {
		t.Fatalf("EnhanceAnswer: %v", err)
	}
	if result.OriginalText != "a fraud model" {
		t.Errorf("OriginalText = %q", result.OriginalText)
	}
	if result.EnhancementStyle != "professional" {
		t.Errorf("default style = %q, want professional", result.EnhancementStyle)
	}
	if !strings.Contains(result.EnhancedText, "a fraud model") {
		t.Error("mock enhancement must preserve the user's text")
	}
}

func TestEnhanceAnswerParsesBackendResponse(t *testing.T) {
	srv := geminiStub(t, `{"enhanced_text":"A supervised fraud-detection model.","confidence":0.9,"improvements":["added model class"]}`)
	defer srv.Close()

	svc := stubbedAssist(t, srv)
	result, err := svc.EnhanceAnswer(context.Background(), &model.EnhanceRequest{
		Question:  "Describe the AI system",
		UserInput: "a fraud model",
	})
	if err != nil {
		t.Fatalf("EnhanceAnswer: %v", err)
	}
	if result.EnhancedText != "A supervised fraud-detection model." {
		t.Errorf("EnhancedText = %q", result.EnhancedText)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", result.Confidence)
	}
	if result.OriginalText != "a fraud model" {
		t.Error("response must carry the original text back")
	}
}

func TestEnhanceAnswerFallsBackOnBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := stubbedAssist(t, srv)
	result, err := svc.EnhanceAnswer(context.Background(), &model.EnhanceRequest{
		Question:  "Describe the AI system",
		UserInput: "a fraud model",
	})
	if err != nil {
		t.Fatalf("EnhanceAnswer should not fail: %v", err)
	}
	if !strings.Contains(result.EnhancedText, "a fraud model") {
		t.Error("fallback must leave the user's text intact")
	}
}

func TestSuggestMockWhenDisabled(t *testing.T) {
	svc := disabledAssist()
	result, err := svc.Suggest(context.Background(), &model.SuggestRequest{
		Question:       "What oversight mechanism is in place?",
		NumSuggestions: 2,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if result.Count != 2 || len(result.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(result.Suggestions))
	}
	if result.Question == "" {
		t.Error("result should echo the question")
	}
}

func TestSuggestDefaultsCount(t *testing.T) {
	svc := disabledAssist()
	result, err := svc.Suggest(context.Background(), &model.SuggestRequest{Question: "q"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if result.Count != 3 {
		t.Errorf("default suggestion count = %d, want 3", result.Count)
	}
}

func TestGenerateRecommendationsFallbackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	svc := stubbedAssist(t, srv)
	got := svc.GenerateRecommendations(context.Background(), &model.Project{Name: "P"}, model.NewAssessmentRecord("p1"))
	if got != FallbackRecommendations {
		t.Errorf("expected the fixed fallback narrative, got %q", got)
	}
}

func TestGenerateRecommendationsMockNamesPendingSections(t *testing.T) {
	svc := disabledAssist()
	got := svc.GenerateRecommendations(context.Background(), &model.Project{Name: "P"}, model.NewAssessmentRecord("p1"))
	if !strings.Contains(got, "System Overview") {
		t.Errorf("mock narrative should name incomplete sections, got %q", got)
	}
}

func TestHealthDegradedWithoutKey(t *testing.T) {
	svc := disabledAssist()
	health := svc.Health(context.Background())
	if health.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", health.Status)
	}
	if health.Service != "gemini" {
		t.Errorf("Service = %q, want gemini", health.Service)
	}
}

func TestHealthOKAgainstStub(t *testing.T) {
	srv := geminiStub(t, `{"ok": true}`)
	defer srv.Close()

	svc := stubbedAssist(t, srv)
	health := svc.Health(context.Background())
	if health.Status != "ok" {
		t.Errorf("Status = %q, want ok (%s)", health.Status, health.TestResult)
	}
}
