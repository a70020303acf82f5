package webhook

import (
	"context"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
	"github.com/tarsy-labs/checklist-rag/pkg/slack"
)

// SlackDestination posts the checklist to a Slack channel via Block Kit as
// a new, unthreaded message.
type SlackDestination struct {
	name    string
	service *slack.Service
	filter  Filter
	retry   RetryConfig
}

// NewSlackDestination wraps a configured slack.Service as a webhook
// destination.
func NewSlackDestination(name string, service *slack.Service, filter Filter, retry RetryConfig) *SlackDestination {
	return &SlackDestination{name: name, service: service, filter: filter, retry: retry}
}

func (d *SlackDestination) Name() string       { return d.name }
func (d *SlackDestination) Type() string       { return "slack" }
func (d *SlackDestination) Filter() Filter     { return d.filter }
func (d *SlackDestination) Retry() RetryConfig { return d.retry }

func (d *SlackDestination) ShouldSend(severity string, labels map[string]string) bool {
	return d.filter.admits(severity, labels)
}

// Attempt posts c as a new Slack message. It never threads onto a prior
// message: checklist.Checklist carries no fingerprint field to match
// against channel history, so ChecklistNotificationInput.Fingerprint is
// always its zero value here.
func (d *SlackDestination) Attempt(ctx context.Context, c checklist.Checklist) DeliveryResult {
	err := d.service.NotifyChecklistGenerated(ctx, slack.ChecklistNotificationInput{
		Checklist: c,
	})
	if err != nil {
		return DeliveryResult{Success: false, Err: err}
	}
	return DeliveryResult{Success: true, StatusCode: 200}
}
