package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"complyq/internal/config"
	"complyq/internal/model"
)

// FallbackRecommendations is substituted when narrative generation
// fails, so report rendering never blocks on the AI backend.
const FallbackRecommendations = "Automated recommendations are unavailable for this report. " +
	"Review any sections marked incomplete and consult your compliance team for next steps."

// AssistService handles answer enhancement, suggestions and report
// narrative via the Gemini API, with mock fallbacks whenever the API is
// not configured or a call fails. A failed call never modifies answers.
type AssistService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAssistService creates a new assist service
func NewAssistService() *AssistService {
	cfg := config.DefaultAIConfig()
	return NewAssistServiceWithConfig(cfg)
}

// NewAssistServiceWithConfig creates an assist service with an explicit
// configuration (used by tests).
func NewAssistServiceWithConfig(cfg *config.AIConfig) *AssistService {
	return &AssistService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// EnhanceAnswer improves a free-text answer in the requested style
func (s *AssistService) EnhanceAnswer(ctx context.Context, req *model.EnhanceRequest) (*model.EnhanceResult, error) {
	if req.EnhancementStyle == "" {
		req.EnhancementStyle = "professional"
	}
	if !s.config.IsEnabled() {
		return s.mockEnhance(req), nil
	}

	prompt := s.buildEnhancePrompt(req)
	response, err := s.callGemini(ctx, s.config.Models.Enhance, prompt)
	if err != nil {
		return s.mockEnhance(req), nil
	}

	var result model.EnhanceResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return s.mockEnhance(req), nil
	}
	result.OriginalText = req.UserInput
	result.EnhancementStyle = req.EnhancementStyle
	return &result, nil
}

// Suggest generates candidate answers for a question
func (s *AssistService) Suggest(ctx context.Context, req *model.SuggestRequest) (*model.SuggestResult, error) {
	if req.NumSuggestions <= 0 {
		req.NumSuggestions = 3
	}
	if !s.config.IsEnabled() {
		return s.mockSuggest(req), nil
	}

	prompt := s.buildSuggestPrompt(req)
	response, err := s.callGemini(ctx, s.config.Models.Suggest, prompt)
	if err != nil {
		return s.mockSuggest(req), nil
	}

	var result model.SuggestResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return s.mockSuggest(req), nil
	}
	result.Question = req.Question
	result.Count = len(result.Suggestions)
	return &result, nil
}

// GenerateRecommendations produces the report narrative from the full
// answer set. On any failure the fixed fallback string is returned so
// downstream rendering proceeds.
func (s *AssistService) GenerateRecommendations(ctx context.Context, project *model.Project, record *model.AssessmentRecord) string {
	if !s.config.IsEnabled() {
		return s.mockRecommendations(record)
	}

	prompt := s.buildNarrativePrompt(project, record)
	response, err := s.callGemini(ctx, s.config.Models.Narrative, prompt)
	if err != nil {
		return FallbackRecommendations
	}

	var result struct {
		Recommendations string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(response), &result); err != nil || result.Recommendations == "" {
		return FallbackRecommendations
	}
	return result.Recommendations
}

// Health reports whether the AI backend is configured and reachable
func (s *AssistService) Health(ctx context.Context) *model.AssistHealth {
	health := &model.AssistHealth{Service: "gemini"}
	if !s.config.IsEnabled() {
		health.Status = "degraded"
		health.TestResult = "api key not configured, mock responses in use"
		return health
	}
	_, err := s.callGemini(ctx, s.config.Models.Enhance, `Return ONLY valid JSON: {"ok": true}`)
	if err != nil {
		health.Status = "degraded"
		health.TestResult = err.Error()
		return health
	}
	health.Status = "ok"
	health.TestResult = "round trip succeeded"
	return health
}

// callGemini makes a request to the Gemini API
func (s *AssistService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// Prompt builders
func (s *AssistService) buildEnhancePrompt(req *model.EnhanceRequest) string {
	return fmt.Sprintf(`You are helping a project team fill in an AI governance questionnaire.
Improve their draft answer. Return ONLY valid JSON matching this schema:
{
  "enhanced_text": "the improved answer",
  "confidence": 0.0 to 1.0,
  "improvements": ["what was added or clarified"]
}

Question: %s
Hints: %s
Style: %s
Draft answer: %s

Keep all facts from the draft; expand with structure and compliance vocabulary.
Do not invent controls or processes the draft does not mention.`,
		req.Question, strings.Join(req.Hints, "; "), req.EnhancementStyle, req.UserInput)
}

func (s *AssistService) buildSuggestPrompt(req *model.SuggestRequest) string {
	return fmt.Sprintf(`You are helping a project team fill in an AI governance questionnaire.
Return ONLY valid JSON:
{
  "suggestions": ["candidate answer 1", "candidate answer 2"],
  "context": "one sentence on what a strong answer covers"
}

Question: %s
Hints: %s

Generate %d distinct candidate answers a well-governed project might give.`,
		req.Question, strings.Join(req.Hints, "; "), req.NumSuggestions)
}

func (s *AssistService) buildNarrativePrompt(project *model.Project, record *model.AssessmentRecord) string {
	var sb strings.Builder
	for _, item := range record.PendingItems() {
		sb.WriteString(fmt.Sprintf("- %s: %d unanswered\n", item.SectionTitle, item.MissingCount))
	}
	answers, _ := json.Marshal(record.Answers)

	return fmt.Sprintf(`Write compliance recommendations for an AI risk assessment report.
Return ONLY valid JSON: {"recommendations": "3-6 sentences of concrete next steps"}

Project: %s
Description: %s
Completion: %d%%
Incomplete sections:
%s
Answers: %s

Focus on the weakest areas. Be specific and actionable; no marketing language.`,
		project.Name, project.Description, record.CompletionPercentage(), sb.String(), answers)
}

// Mock fallbacks
func (s *AssistService) mockEnhance(req *model.EnhanceRequest) *model.EnhanceResult {
	text := strings.TrimSpace(req.UserInput)
	enhanced := text
	if text != "" && !strings.HasSuffix(text, ".") {
		enhanced = text + "."
	}
	return &model.EnhanceResult{
		EnhancedText:     enhanced,
		OriginalText:     req.UserInput,
		EnhancementStyle: req.EnhancementStyle,
		Confidence:       0.2,
		Improvements:     []string{"AI enhancement unavailable, returned original text"},
	}
}

func (s *AssistService) mockSuggest(req *model.SuggestRequest) *model.SuggestResult {
	suggestions := make([]string, 0, req.NumSuggestions)
	for i := 0; i < req.NumSuggestions; i++ {
		suggestions = append(suggestions, fmt.Sprintf("Document your current practice for: %s", req.Question))
	}
	return &model.SuggestResult{
		Suggestions: suggestions,
		Question:    req.Question,
		Context:     "AI suggestions unavailable; describe your existing process in your own words.",
		Count:       len(suggestions),
	}
}

func (s *AssistService) mockRecommendations(record *model.AssessmentRecord) string {
	pending := record.PendingItems()
	if len(pending) == 0 {
		return "All questionnaire sections are complete. Schedule a compliance review to validate the documented controls."
	}
	titles := make([]string, 0, len(pending))
	for _, p := range pending {
		titles = append(titles, p.SectionTitle)
	}
	return fmt.Sprintf("Complete the remaining questionnaire sections before review: %s. "+
		"Sections left unanswered keep the assessment in a provisional risk bracket.",
		strings.Join(titles, ", "))
}
