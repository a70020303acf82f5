package enrich

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tarsy-labs/checklist-rag/pkg/alert"
)

// DefaultLookback is used when the caller does not specify one.
const DefaultLookback = 15 * time.Minute

// Enricher fans an Alert out to its three providers in parallel, folding any
// per-provider failure into an empty result for that provider only.
type Enricher struct {
	metadata ComputeMetadataProvider
	metrics  MetricsProvider
	logs     LogsProvider
	lookback time.Duration
	logger   *slog.Logger
}

// New builds an Enricher. A zero lookback is replaced by DefaultLookback.
func New(metadata ComputeMetadataProvider, metrics MetricsProvider, logs LogsProvider, lookback time.Duration, logger *slog.Logger) *Enricher {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{metadata: metadata, metrics: metrics, logs: logs, lookback: lookback, logger: logger}
}

// result carries one provider's outcome through the fan-in channel.
type result struct {
	kind     string
	resource *ResourceMetadata
	metrics  []MetricSample
	logs     []LogEvent
}

// Enrich launches the three provider calls concurrently and waits for all to
// settle (success or caught failure). It never returns an error for
// provider failures; it only returns an error if ctx is cancelled before all
// three settle, per spec §5's "partial-failure tolerance does not swallow
// cancellation" rule.
func (e *Enricher) Enrich(ctx context.Context, a alert.Alert) (EnrichedContext, error) {
	resourceID, usedFallback := ResolveResourceID(a)
	if usedFallback {
		e.logger.Warn("enrich: no resource-id dimension present, using alert id as fallback", "alertId", a.ID)
	}

	resultsCh := make(chan result, 3)
	var g errgroup.Group

	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		meta, err := e.metadata.GetInstance(ctx, resourceID)
		if err != nil {
			e.logger.Warn("enrich: metadata provider failed", "resourceId", resourceID, "err", err)
			resultsCh <- result{kind: "metadata"}
			return nil
		}
		resultsCh <- result{kind: "metadata", resource: meta}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		samples, err := e.metrics.FetchMetrics(ctx, resourceID, e.lookback)
		if err != nil {
			e.logger.Warn("enrich: metrics provider failed", "resourceId", resourceID, "err", err)
			resultsCh <- result{kind: "metrics"}
			return nil
		}
		resultsCh <- result{kind: "metrics", metrics: samples}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		events, err := e.logs.FetchLogs(ctx, resourceID, e.lookback, "")
		if err != nil {
			e.logger.Warn("enrich: logs provider failed", "resourceId", resourceID, "err", err)
			resultsCh <- result{kind: "logs"}
			return nil
		}
		resultsCh <- result{kind: "logs", logs: events}
		return nil
	})

	// Providers only ever return nil (failures are captured into resultsCh
	// instead), so g.Wait() never short-circuits on error — it's used here
	// purely as fan-out/fan-in sugar over the three goroutines above.
	go func() {
		_ = g.Wait()
		close(resultsCh)
	}()

	out := EnrichedContext{Alert: a, Metrics: []MetricSample{}, Logs: []LogEvent{}, Extras: map[string]string{}}
	for r := range resultsCh {
		switch r.kind {
		case "metadata":
			out.Resource = r.resource
		case "metrics":
			out.Metrics = r.metrics
		case "logs":
			out.Logs = r.logs
		}
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
