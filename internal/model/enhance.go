package model

// EnhanceRequest asks the assist service to improve a raw answer
type EnhanceRequest struct {
	Question         string   `json:"question"`
	Hints            []string `json:"hints,omitempty"`
	UserInput        string   `json:"user_input"`
	EnhancementStyle string   `json:"enhancement_style,omitempty"`
}

// EnhanceResult is the assist service response for an enhancement
type EnhanceResult struct {
	EnhancedText     string   `json:"enhanced_text"`
	OriginalText     string   `json:"original_text"`
	EnhancementStyle string   `json:"enhancement_style"`
	Confidence       float64  `json:"confidence"`
	Improvements     []string `json:"improvements"`
}

// SuggestRequest asks for candidate answers to a question
type SuggestRequest struct {
	Question       string   `json:"question"`
	Hints          []string `json:"hints,omitempty"`
	NumSuggestions int      `json:"num_suggestions"`
}

// SuggestResult is the assist service response for suggestions
type SuggestResult struct {
	Suggestions []string `json:"suggestions"`
	Question    string   `json:"question"`
	Context     string   `json:"context"`
	Count       int      `json:"count"`
}

// AssistHealth reports availability of the assist backend
type AssistHealth struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	TestResult string `json:"test_result"`
}
