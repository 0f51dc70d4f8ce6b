package model

import "github.com/joystie/graph-telemetry-api/internal/graph"

// AnalyzeRequest representa o payload de entrada para análise de screenshot.
// ImageData aceita base64 puro ou data URL (prefixo "data:image/...;base64,").
type AnalyzeRequest struct {
	ImageData  string `json:"image_data" binding:"required"`
	TargetDay  string `json:"target_day" binding:"required"`
	ChildID    string `json:"child_id,omitempty"`
	WebhookURL string `json:"webhook_url" binding:"omitempty,url"`
}

// AnalyzeResponse representa a resposta de uma análise
type AnalyzeResponse struct {
	Success bool          `json:"success"`
	Result  *graph.Result `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Response representa a resposta padrão da API
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// ErrorResponse representa uma resposta de erro
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WebhookPayload representa o payload enviado ao webhook no modo assíncrono
type WebhookPayload struct {
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	ChildID   string        `json:"child_id,omitempty"`
	Result    *graph.Result `json:"result,omitempty"`
}
