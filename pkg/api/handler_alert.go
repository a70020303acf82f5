package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// submitAlertHandler handles POST /api/v1/alerts: parse the raw alert body
// with C1, run it through the C9 pipeline, and return the generated
// Checklist (spec §6).
func (s *Server) submitAlertHandler(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, ErrCodeValidation, "failed to read request body", err)
		return
	}

	a, err := s.registry.Parse(raw)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, ErrCodeValidation, "alert could not be parsed", err)
		return
	}
	if a == nil {
		// The claiming adapter signaled a skippable event (e.g. OK/recovery).
		c.Status(http.StatusOK)
		return
	}
	if !a.Severity.Valid() {
		s.writeError(c, http.StatusBadRequest, ErrCodeValidation, "unknown alert severity", nil)
		return
	}

	checklist, err := s.pipeline.ProcessAlert(c.Request.Context(), *a, 0)
	if err != nil {
		status, code := classifyAlertError(err)
		s.writeError(c, status, code, "failed to generate checklist", err)
		return
	}

	c.JSON(http.StatusOK, checklist)

	// Dispatch happens after the response is written (fire-and-forget, per
	// spec §4.9 — the orchestrator itself never invokes the dispatcher).
	if s.dispatcher != nil {
		go s.dispatcher.Dispatch(context.Background(), checklist, string(a.Severity), a.Labels)
	}
}
