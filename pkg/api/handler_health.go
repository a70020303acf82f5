package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler handles GET /health: the spec-mandated {status, timestamp}
// plus the supplemented vector-store and destination counts (SPEC_FULL §12).
func (s *Server) healthHandler(c *gin.Context) {
	s.mu.RLock()
	destinationCount := len(s.webhooks)
	s.mu.RUnlock()

	resp := &HealthResponse{
		Status:           "UP",
		Timestamp:        s.now(),
		DestinationCount: destinationCount,
	}

	if s.store != nil {
		resp.VectorStoreProvider = s.store.ProviderType()
		if count, err := s.store.Count(); err == nil {
			resp.VectorStoreChunkCount = count
		} else {
			s.logger.Warn("health check: failed to count vector store chunks", "error", err)
		}
	}

	c.JSON(http.StatusOK, resp)
}
