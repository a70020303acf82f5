package webhook

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

type fakeDestination struct {
	name    string
	filter  Filter
	retry   RetryConfig
	results []DeliveryResult // one per call, repeats last once exhausted
	calls   int32
	panicOn int32 // call index (1-based) on which to panic, 0 = never
}

func (f *fakeDestination) Name() string      { return f.name }
func (f *fakeDestination) Type() string      { return "fake" }
func (f *fakeDestination) Filter() Filter     { return f.filter }
func (f *fakeDestination) Retry() RetryConfig { return f.retry }

func (f *fakeDestination) ShouldSend(severity string, labels map[string]string) bool {
	return f.filter.admits(severity, labels)
}

func (f *fakeDestination) Attempt(ctx context.Context, c checklist.Checklist) DeliveryResult {
	n := atomic.AddInt32(&f.calls, 1)
	if f.panicOn != 0 && n == f.panicOn {
		panic("boom")
	}
	idx := int(n) - 1
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	return f.results[idx]
}

func TestDispatcher_EveryDestinationAppearsExactlyOnce(t *testing.T) {
	a := &fakeDestination{name: "a", results: []DeliveryResult{{Success: true, StatusCode: 200}}}
	b := &fakeDestination{name: "b", results: []DeliveryResult{{Success: false, StatusCode: 403}}}
	d := NewDispatcher(a, b)

	results := d.Dispatch(context.Background(), checklist.Checklist{AlertID: "x"}, "CRITICAL", nil)

	require.Len(t, results, 2)
	names := map[string]bool{}
	for _, r := range results {
		names[r.DestinationName] = true
	}
	assert.True(t, names["a"])
	assert.True(t, names["b"])
}

func TestDispatcher_RetriesOnServerErrorThenSucceeds(t *testing.T) {
	dest := &fakeDestination{
		name: "flaky",
		retry: RetryConfig{RetryCount: 3, InitialDelay: 10 * time.Millisecond},
		results: []DeliveryResult{
			{Success: false, StatusCode: 500},
			{Success: false, StatusCode: 500},
			{Success: true, StatusCode: 200},
		},
	}
	d := NewDispatcher(dest)

	start := time.Now()
	results := d.Dispatch(context.Background(), checklist.Checklist{AlertID: "x"}, "CRITICAL", nil)
	elapsed := time.Since(start)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, 3, results[0].Attempts)
	// initialDelay*(2^0 + 2^1) = 10ms + 20ms = 30ms cumulative, no jitter.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestDispatcher_NonRetryableClientErrorStopsAfterOneAttempt(t *testing.T) {
	dest := &fakeDestination{
		name:    "forbidden",
		retry:   RetryConfig{RetryCount: 3, InitialDelay: 10 * time.Millisecond},
		results: []DeliveryResult{{Success: false, StatusCode: 403}},
	}
	d := NewDispatcher(dest)

	results := d.Dispatch(context.Background(), checklist.Checklist{AlertID: "x"}, "CRITICAL", nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, 1, results[0].Attempts)
	assert.Equal(t, 403, results[0].StatusCode)
}

func TestDispatcher_PanicIsolatedAsFailureAndDoesNotBlockOthers(t *testing.T) {
	boom := &fakeDestination{name: "boom", panicOn: 1, results: []DeliveryResult{{}}}
	ok := &fakeDestination{name: "ok", results: []DeliveryResult{{Success: true, StatusCode: 200}}}
	d := NewDispatcher(boom, ok)

	results := d.Dispatch(context.Background(), checklist.Checklist{AlertID: "x"}, "CRITICAL", nil)

	require.Len(t, results, 2)
	byName := map[string]DeliveryResult{}
	for _, r := range results {
		byName[r.DestinationName] = r
	}
	assert.False(t, byName["boom"].Success)
	assert.Error(t, byName["boom"].Err)
	assert.True(t, byName["ok"].Success)
}

func TestDispatcher_FilteredDestinationNeverAttempted(t *testing.T) {
	dest := &fakeDestination{
		name:    "prod-only",
		filter:  Filter{RequiredLabels: map[string]string{"env": "prod"}},
		results: []DeliveryResult{{Success: true, StatusCode: 200}},
	}
	d := NewDispatcher(dest)

	results := d.Dispatch(context.Background(), checklist.Checklist{AlertID: "x"}, "CRITICAL", map[string]string{"env": "staging"})

	assert.Empty(t, results)
	assert.Equal(t, int32(0), dest.calls)
}

func TestFilter_Admits(t *testing.T) {
	t.Run("empty severities admits all", func(t *testing.T) {
		f := Filter{}
		assert.True(t, f.admits("INFO", nil))
	})

	t.Run("severity mismatch rejects", func(t *testing.T) {
		f := Filter{Severities: []string{"CRITICAL"}}
		assert.False(t, f.admits("WARNING", nil))
	})

	t.Run("missing required label rejects", func(t *testing.T) {
		f := Filter{RequiredLabels: map[string]string{"env": "prod"}}
		assert.False(t, f.admits("CRITICAL", map[string]string{"env": "staging"}))
	})

	t.Run("all conditions satisfied admits", func(t *testing.T) {
		f := Filter{Severities: []string{"CRITICAL"}, RequiredLabels: map[string]string{"env": "prod"}}
		assert.True(t, f.admits("CRITICAL", map[string]string{"env": "prod", "team": "sre"}))
	})
}
