package server

import "github.com/kris-hansen/hwflow/utils/workflow"

// HealthResponse is returned by GET /api/generate-workflow
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	HasAPIKey bool   `json:"hasApiKey"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// GenerateResponse carries the normalized steps
type GenerateResponse struct {
	Steps []workflow.Step `json:"steps"`
}

// ErrorResponse is the envelope for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ListModelsResponse reports which probed models answered
type ListModelsResponse struct {
	AvailableModels []string `json:"availableModels"`
	Recommended     string   `json:"recommended"`
}
