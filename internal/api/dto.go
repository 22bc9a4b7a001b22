package api

import (
	"time"

	"finresearch/internal/classify"
	"finresearch/internal/store"
)

// AnalyzeRequest is the incoming question payload. Bounds are enforced by
// the handler before the classifier ever sees the text.
type AnalyzeRequest struct {
	Question string `json:"question" validate:"required,min=3,max=1000"`
}

// AnalyzeResponse is the envelope returned for every accepted question.
// Confidence stays unset until a calibrated scoring method exists.
type AnalyzeResponse struct {
	Category   classify.Category `json:"category"`
	Summary    string            `json:"summary"`
	Data       map[string]any    `json:"data,omitempty"`
	Confidence *float64          `json:"confidence,omitempty"`
}

// HealthResponse is the liveness payload consumed by orchestration probes.
type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
}

// FieldViolation describes one violated request constraint.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrorBody is the 422 wire shape: one detail entry per violation.
type ValidationErrorBody struct {
	Error  string           `json:"error"`
	Detail []FieldViolation `json:"detail"`
}

// InternalErrorBody is the opaque 500 wire shape. Internal detail never
// leaks to the client, only to server-side logs.
type InternalErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// QueryDTO is the API representation of a logged query.
type QueryDTO struct {
	ID        uint      `json:"id"`
	Question  string    `json:"question"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// QueriesResponse is the paginated query-log listing.
type QueriesResponse struct {
	Items []QueryDTO `json:"items"`
	Total int64      `json:"total"`
}

// QueryFromModel converts a store.QueryRecord into the DTO representation.
func QueryFromModel(r store.QueryRecord) QueryDTO {
	return QueryDTO{
		ID:        r.ID,
		Question:  r.Question,
		Category:  r.Category,
		CreatedAt: r.CreatedAt,
	}
}
