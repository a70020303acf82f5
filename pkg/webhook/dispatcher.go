package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

// Dispatcher fans a Checklist out to every admitted destination in
// parallel, retrying each with exponential backoff independently. A failure
// or exception in one destination never prevents attempts on another.
type Dispatcher struct {
	destinations []Destination
}

func NewDispatcher(destinations ...Destination) *Dispatcher {
	return &Dispatcher{destinations: destinations}
}

// Dispatch completes when every destination has either succeeded or
// exhausted its retries. Every destination whose filter admits the
// checklist appears exactly once in the result slice, regardless of
// outcome; a destination whose filter rejects it is neither attempted nor
// listed.
func (d *Dispatcher) Dispatch(ctx context.Context, c checklist.Checklist, severity string, labels map[string]string) []DeliveryResult {
	resultsCh := make(chan DeliveryResult, len(d.destinations))
	var g errgroup.Group

	for _, dest := range d.destinations {
		dest := dest
		g.Go(func() error {
			if !dest.ShouldSend(severity, labels) {
				return nil
			}
			resultsCh <- deliverWithRetry(ctx, dest, c)
			return nil
		})
	}

	// Every destination's own failure is captured in its DeliveryResult, not
	// returned from g.Go, so g.Wait() here is fan-in sugar only — it never
	// aborts the dispatch early the way errgroup's fail-fast Wait() would.
	go func() {
		_ = g.Wait()
		close(resultsCh)
	}()

	results := make([]DeliveryResult, 0, len(d.destinations))
	for r := range resultsCh {
		results = append(results, r)
	}
	return results
}

// deliverWithRetry implements spec §4.8's retry policy: maxAttempts =
// retryCount+1; attempt N failing retryably delays
// initialDelay*2^(N-1) before attempt N+1; non-retryable or successful
// results stop immediately; exhausting attempts returns the last failure
// verbatim. A panic from Attempt is captured as a synthesized failure so
// a panicking destination never aborts the dispatch.
func deliverWithRetry(ctx context.Context, dest Destination, c checklist.Checklist) (result DeliveryResult) {
	defer func() {
		if r := recover(); r != nil {
			result = DeliveryResult{DestinationName: dest.Name(), Success: false, Err: fmt.Errorf("panic: %v", r), Attempts: result.Attempts + 1}
		}
	}()

	retry := dest.Retry()
	maxAttempts := retry.RetryCount + 1

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retry.InitialDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	var last DeliveryResult
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last = dest.Attempt(ctx, c)
		last.Attempts = attempt
		last.DestinationName = dest.Name()

		if !isRetryable(last) {
			return last
		}
		if attempt == maxAttempts {
			break
		}

		delay := bo.NextBackOff()
		select {
		case <-ctx.Done():
			last.Err = ctx.Err()
			return last
		case <-time.After(delay):
		}
	}
	return last
}

// isRetryable implements spec §4.8: retryable iff HTTP status in [500,599]
// or a connection/timeout error with no status; non-retryable iff status in
// [400,499] or Success is true.
func isRetryable(r DeliveryResult) bool {
	if r.Success {
		return false
	}
	if r.StatusCode >= 400 && r.StatusCode <= 499 {
		return false
	}
	if r.StatusCode >= 500 && r.StatusCode <= 599 {
		return true
	}
	return r.StatusCode == 0 && r.Err != nil
}
