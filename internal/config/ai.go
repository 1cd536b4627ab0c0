package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Enhance is for per-answer enhancement (needs to be fast)
	Enhance string `json:"enhance"`

	// Suggest is for on-demand answer suggestions (needs to be fast)
	Suggest string `json:"suggest"`

	// Narrative is for report recommendation text (quality over speed,
	// not blocking)
	Narrative string `json:"narrative"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			// Fast models for interactive calls, quality model for the
			// background narrative.
			Enhance:   getEnvOrDefault("GEMINI_MODEL_ENHANCE", "gemini-2.5-flash-preview-05-20"),
			Suggest:   getEnvOrDefault("GEMINI_MODEL_SUGGEST", "gemini-2.5-flash-preview-05-20"),
			Narrative: getEnvOrDefault("GEMINI_MODEL_NARRATIVE", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
