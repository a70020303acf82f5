// Package api implements spec §6's thin HTTP transport: submit an alert,
// trigger a runbook sync, and list/register webhook destinations. It is a
// collaborator, not the orchestrator — every handler delegates to a
// pipeline/service call and maps its error into the wire shape below.
package api

import "time"

// ErrorResponse is the stable error body shape for every non-2xx response
// (spec §6/§7): a stable errorCode a caller can branch on, plus enough
// context to correlate with server-side logs.
type ErrorResponse struct {
	CorrelationID string    `json:"correlationId"`
	ErrorCode     string    `json:"errorCode"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
	Details       string    `json:"details,omitempty"`
}

const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodePipeline   = "PIPELINE_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
)

// RunbookSyncResponse is returned by POST /api/v1/runbooks/sync.
type RunbookSyncResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"requestId"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status                string    `json:"status"`
	Timestamp             time.Time `json:"timestamp"`
	VectorStoreProvider   string    `json:"vectorStoreProvider"`
	VectorStoreChunkCount int       `json:"vectorStoreChunkCount"`
	DestinationCount      int       `json:"destinationCount"`
}

// WebhookConfigResponse mirrors config.WebhookConfig for list/create
// responses, omitting nothing a client needs to recognize its own entry.
type WebhookConfigResponse struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	URL          string            `json:"url,omitempty"`
	Enabled      bool              `json:"enabled"`
	Headers      map[string]string `json:"headers,omitempty"`
	Severities   []string          `json:"severities,omitempty"`
	RetryCount   int               `json:"retryCount"`
	RetryDelayMs int               `json:"retryDelayMs"`
}

// CreateWebhookRequest is the body of POST /api/v1/webhooks.
type CreateWebhookRequest struct {
	Name         string            `json:"name" binding:"required"`
	Type         string            `json:"type" binding:"required"`
	URL          string            `json:"url,omitempty"`
	Enabled      bool              `json:"enabled"`
	Headers      map[string]string `json:"headers,omitempty"`
	Severities   []string          `json:"severities,omitempty"`
	RetryCount   int               `json:"retryCount,omitempty"`
	RetryDelayMs int               `json:"retryDelayMs,omitempty"`
}
