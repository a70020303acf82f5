package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

// syncRunbooksHandler handles POST /api/v1/runbooks/sync: kicks off C7's
// ingestAll in the background and returns immediately (spec §6).
func (s *Server) syncRunbooksHandler(c *gin.Context) {
	if s.runbooks == nil {
		s.writeError(c, http.StatusServiceUnavailable, ErrCodePipeline, "runbook service not configured", nil)
		return
	}

	requestID := uuid.NewString()
	go func() {
		if err := s.runbooks.IngestAll(context.Background()); err != nil {
			s.logger.Error("runbook sync failed", "request_id", requestID, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, &RunbookSyncResponse{
		Status:    "STARTED",
		RequestID: requestID,
	})
}
