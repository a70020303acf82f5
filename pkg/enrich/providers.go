package enrich

import (
	"context"
	"time"
)

// ComputeMetadataProvider resolves resource metadata for an instance/VM id.
type ComputeMetadataProvider interface {
	GetInstance(ctx context.Context, resourceID string) (*ResourceMetadata, error)
}

// MetricsProvider fetches recent metric samples for a resource.
type MetricsProvider interface {
	FetchMetrics(ctx context.Context, resourceID string, lookback time.Duration) ([]MetricSample, error)
}

// LogsProvider fetches recent log events for a resource, optionally
// filtered by a provider-specific query string.
type LogsProvider interface {
	FetchLogs(ctx context.Context, resourceID string, lookback time.Duration, query string) ([]LogEvent, error)
}
