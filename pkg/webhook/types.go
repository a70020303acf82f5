// Package webhook implements C8: fanning a generated Checklist out to
// configured destinations in parallel, with per-destination filtering and
// exponential-backoff retry.
package webhook

import (
	"context"
	"time"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

// DeliveryResult is the outcome of one destination's send attempt.
type DeliveryResult struct {
	DestinationName string
	Success         bool
	StatusCode      int
	Attempts        int
	Err             error
}

// Filter governs whether a destination admits a checklist: its severity set
// (empty = admit all) and every required label must match the alert's
// labels by value.
type Filter struct {
	Severities     []string
	RequiredLabels map[string]string
}

// RetryConfig is the per-destination retry policy (spec §4.8).
type RetryConfig struct {
	RetryCount   int
	InitialDelay time.Duration
}

// DefaultRetryConfig matches spec's default retryCount=3, initialDelay=1s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{RetryCount: 3, InitialDelay: time.Second}
}

// Destination is one downstream channel that can receive a checklist.
// Attempt is called at least once per delivery and at most
// RetryConfig.RetryCount+1 times; the dispatcher owns the retry loop so
// destinations stay simple single-attempt senders.
type Destination interface {
	Name() string
	Type() string
	Filter() Filter
	Retry() RetryConfig
	ShouldSend(severity string, labels map[string]string) bool
	Attempt(ctx context.Context, c checklist.Checklist) DeliveryResult
}

// admits reports whether a filter passes for the given severity/labels,
// implementing spec §4.8's filtering rule.
func (f Filter) admits(severity string, labels map[string]string) bool {
	if len(f.Severities) > 0 {
		found := false
		for _, s := range f.Severities {
			if s == severity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for k, v := range f.RequiredLabels {
		if labels[k] != v {
			return false
		}
	}
	return true
}
