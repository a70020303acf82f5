// Package enrich implements C2: fanning an Alert out to independent
// compute-metadata, metrics, and logs providers, tolerating the partial
// failure of any one of them.
package enrich

import (
	"time"

	"github.com/tarsy-labs/checklist-rag/pkg/alert"
)

// ResourceMetadata describes the compute resource an alert fired against.
// It is absent (nil) when the metadata provider cannot resolve the resource.
type ResourceMetadata struct {
	ID             string
	DisplayName    string
	Grouping       string
	Shape          string
	Zone           string
	Tags           map[string]string
	StructuredTags map[string]map[string]string
}

// MetricSample is one observed value of one named metric.
type MetricSample struct {
	Name      string
	Namespace string
	Value     float64
	Unit      string
	Timestamp time.Time
}

// MetricSeries is an ordered sequence of samples for one (name, namespace).
type MetricSeries struct {
	Name      string
	Namespace string
	Samples   []MetricSample
}

// LogEvent is one log line/record relevant to the alerting resource.
type LogEvent struct {
	ID         string
	Timestamp  time.Time
	Level      string
	Message    string
	Attributes map[string]string
}

// EnrichedContext augments an Alert with whatever resource state, metrics,
// and logs the enricher's providers could resolve. Only Alert is guaranteed
// present.
type EnrichedContext struct {
	Alert    alert.Alert
	Resource *ResourceMetadata
	Metrics  []MetricSample
	Logs     []LogEvent
	Extras   map[string]string
}

// resourceIDKeys is the fixed priority list probed against alert.Dimensions
// to resolve the resource id enrichment providers are queried with.
var resourceIDKeys = []string{"resourceId", "instanceId", "InstanceId", "resource_id"}

// ResolveResourceID implements spec §4.2's resolution policy: the first
// present dimension key in priority order, or alert.ID as a synthetic
// fallback when none are present.
func ResolveResourceID(a alert.Alert) (id string, usedFallback bool) {
	for _, k := range resourceIDKeys {
		if v, ok := a.Dimensions[k]; ok && v != "" {
			return v, false
		}
	}
	return a.ID, true
}
