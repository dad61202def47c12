package dto

import "github.com/helpdesk-labs/incident-service/internal/classifier"

// SuggestRequest carries the free text to classify; either field may be
// absent.
type SuggestRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}

// SuggestResponse is the classification result.
type SuggestResponse struct {
	Category    *string `json:"categoria"`
	CategoryID  *int64  `json:"categoria_id"`
	Confidence  float64 `json:"confianza"`
	Explanation string  `json:"explicacion"`
}

// NewSuggestResponse maps a classifier suggestion.
func NewSuggestResponse(s classifier.Suggestion) SuggestResponse {
	return SuggestResponse{
		Category:    s.Category,
		CategoryID:  s.CategoryID,
		Confidence:  s.Confidence,
		Explanation: s.Explanation,
	}
}

// ChatRequest payload.
type ChatRequest struct {
	Message string `json:"mensaje"`
}

// ChatResponse payload.
type ChatResponse struct {
	Answer string `json:"respuesta"`
}

// FAQRequest is the create/replace payload for a FAQ.
type FAQRequest struct {
	Keywords []string `json:"keywords"`
	Answer   string   `json:"respuesta"`
}
