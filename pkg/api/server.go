package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tarsy-labs/checklist-rag/pkg/alert"
	"github.com/tarsy-labs/checklist-rag/pkg/config"
	"github.com/tarsy-labs/checklist-rag/pkg/pipeline"
	"github.com/tarsy-labs/checklist-rag/pkg/runbook"
	"github.com/tarsy-labs/checklist-rag/pkg/vectorstore"
	"github.com/tarsy-labs/checklist-rag/pkg/webhook"
)

// Server is the thin HTTP transport described by spec §6. It owns no
// business logic: every handler parses/validates the request, delegates to
// the pipeline or a service, and maps the result onto the wire.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger

	registry   *alert.Registry
	pipeline   *pipeline.Pipeline
	runbooks   *runbook.Service
	dispatcher *webhook.Dispatcher
	store      vectorstore.Store

	mu       sync.RWMutex
	cfg      *config.Config
	webhooks []config.WebhookConfig // mirrors cfg.Output.Webhooks for list/create
}

// NewServer wires the C1/C9/C7/C8 collaborators into gin handlers.
func NewServer(
	cfg *config.Config,
	registry *alert.Registry,
	pl *pipeline.Pipeline,
	runbooks *runbook.Service,
	dispatcher *webhook.Dispatcher,
	store vectorstore.Store,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), correlationID(), securityHeaders())

	s := &Server{
		router:     router,
		logger:     slog.Default().With("component", "api"),
		registry:   registry,
		pipeline:   pl,
		runbooks:   runbooks,
		dispatcher: dispatcher,
		store:      store,
		cfg:        cfg,
		webhooks:   append([]config.WebhookConfig{}, cfg.Output.Webhooks...),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	v1 := s.router.Group("/api/v1")
	v1.POST("/alerts", s.submitAlertHandler)
	v1.POST("/runbooks/sync", s.syncRunbooksHandler)
	v1.GET("/webhooks", s.listWebhooksHandler)
	v1.POST("/webhooks", s.createWebhookHandler)
}

// Start runs the server on addr, blocking until it stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router}
	return s.httpServer.ListenAndServe()
}

// StartWithListener runs the server on a pre-created listener, used by
// tests that need a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.router}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the underlying router for httptest-based handler tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) now() time.Time { return time.Now().UTC() }
