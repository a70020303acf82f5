package slack

import (
	"context"
	"log/slog"
	"time"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

// ServiceConfig holds the parameters needed to construct a Service.
type ServiceConfig struct {
	Token        string
	Channel      string
	DashboardURL string
}

// ChecklistNotificationInput carries what's needed to post a generated
// checklist back to Slack, optionally threaded onto the alert's originating
// message.
type ChecklistNotificationInput struct {
	Checklist   checklist.Checklist
	Fingerprint string // text to locate the originating alert message, if any
}

// Service handles Slack notification delivery.
// Nil-safe: all methods are no-ops when service is nil.
type Service struct {
	client       *Client
	dashboardURL string
	logger       *slog.Logger
}

// NewService creates a new Slack notification service.
// Returns nil if Token or Channel is empty.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Token == "" || cfg.Channel == "" {
		return nil
	}
	return &Service{
		client:       NewClient(cfg.Token, cfg.Channel),
		dashboardURL: cfg.DashboardURL,
		logger:       slog.Default().With("component", "slack-service"),
	}
}

// NewServiceWithClient creates a Service backed by a pre-built Client.
// Useful for testing with a mock API server.
func NewServiceWithClient(client *Client, dashboardURL string) *Service {
	return &Service{
		client:       client,
		dashboardURL: dashboardURL,
		logger:       slog.Default().With("component", "slack-service"),
	}
}

// NotifyChecklistGenerated posts the checklist to the configured channel,
// threading it onto the alert's originating message when a fingerprint is
// given and a match is found. A failed fingerprint lookup is logged and the
// message is posted unthreaded; a failed post is logged and returned.
func (s *Service) NotifyChecklistGenerated(ctx context.Context, input ChecklistNotificationInput) error {
	if s == nil {
		return nil
	}

	var threadTS string
	if input.Fingerprint != "" {
		var err error
		threadTS, err = s.client.FindMessageByFingerprint(ctx, input.Fingerprint)
		if err != nil {
			s.logger.Warn("failed to find Slack thread for fingerprint",
				"alert_id", input.Checklist.AlertID,
				"error", err)
		}
	}

	blocks := BuildChecklistMessage(input.Checklist, s.dashboardURL)
	if err := s.client.PostMessage(ctx, blocks, threadTS, 10*time.Second); err != nil {
		s.logger.Error("failed to post checklist to Slack",
			"alert_id", input.Checklist.AlertID,
			"error", err)
		return err
	}
	return nil
}
