package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarsy-labs/checklist-rag/pkg/config"
)

// listWebhooksHandler handles GET /api/v1/webhooks: returns the currently
// configured destinations (spec §6 — "mapping, not part of the hard core").
func (s *Server) listWebhooksHandler(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WebhookConfigResponse, len(s.webhooks))
	for i, w := range s.webhooks {
		out[i] = toWebhookResponse(w)
	}
	c.JSON(http.StatusOK, out)
}

// createWebhookHandler handles POST /api/v1/webhooks: validates and
// registers a new destination configuration. It does not rebuild the
// running dispatcher — that requires a restart or a future hot-reload, out
// of scope for this mapping endpoint.
func (s *Server) createWebhookHandler(c *gin.Context) {
	var req CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, ErrCodeValidation, "invalid webhook payload", err)
		return
	}

	w := config.WebhookConfig{
		Name:         req.Name,
		Type:         config.DestinationType(req.Type),
		URL:          req.URL,
		Enabled:      req.Enabled,
		Headers:      req.Headers,
		Filter:       config.WebhookFilter{Severities: req.Severities},
		RetryCount:   req.RetryCount,
		RetryDelayMs: req.RetryDelayMs,
	}
	if !w.Type.IsValid() {
		s.writeError(c, http.StatusBadRequest, ErrCodeValidation, fmt.Sprintf("unknown destination type %q", req.Type), nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.webhooks {
		if existing.Name == w.Name {
			s.writeError(c, http.StatusBadRequest, ErrCodeValidation, fmt.Sprintf("webhook %q already exists", w.Name), nil)
			return
		}
	}
	s.webhooks = append(s.webhooks, w)

	c.JSON(http.StatusCreated, toWebhookResponse(w))
}

func toWebhookResponse(w config.WebhookConfig) WebhookConfigResponse {
	return WebhookConfigResponse{
		Name:         w.Name,
		Type:         string(w.Type),
		URL:          w.URL,
		Enabled:      w.Enabled,
		Headers:      w.Headers,
		Severities:   w.Filter.Severities,
		RetryCount:   w.RetryCount,
		RetryDelayMs: w.RetryDelayMs,
	}
}
