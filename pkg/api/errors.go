package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarsy-labs/checklist-rag/pkg/alert"
)

// writeError writes the spec §6/§7 error body and logs the underlying cause
// server-side, keyed by the same correlation id returned to the caller.
func (s *Server) writeError(c *gin.Context, status int, code, message string, cause error) {
	correlationID := requestID(c)
	s.logger.Error("request failed",
		"correlation_id", correlationID,
		"error_code", code,
		"status", status,
		"error", cause)

	c.JSON(status, &ErrorResponse{
		CorrelationID: correlationID,
		ErrorCode:     code,
		Message:       message,
		Timestamp:     s.now(),
		Details:       errDetails(cause),
	})
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// classifyAlertError maps a pipeline failure to spec §6's two status codes:
// a parse/validation failure at the door is 400, anything past that point
// (enrichment, retrieval, generation) is 500.
func classifyAlertError(err error) (status int, code string) {
	var parseErr *alert.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest, ErrCodeValidation
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusInternalServerError, ErrCodePipeline
	}
	return http.StatusInternalServerError, ErrCodePipeline
}
