// Package embedding implements C3: dense-vector embeddings for text and
// enriched context, via pluggable providers (Ollama, AWS Bedrock).
package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tarsy-labs/checklist-rag/pkg/enrich"
)

// Provider computes embeddings. All vectors produced by one Provider across
// a process lifetime share the same dimension D.
type Provider interface {
	ProviderType() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ProviderError wraps a downstream embedding-provider failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding: provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Normalize returns v scaled to unit L2 norm, so that a dot product against
// another normalized vector equals cosine similarity. A zero vector is
// returned unchanged.
func Normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return v
	}
	norm := float32(math.Sqrt(sumSq))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// EmbedContext builds the spec §4.3 query string -
// "alert.title + ' ' + alert.message" plus, when present, the resource
// shape and the names of the first few metric samples - and embeds it.
func EmbedContext(ctx context.Context, p Provider, ec enrich.EnrichedContext) ([]float32, error) {
	var b strings.Builder
	b.WriteString(ec.Alert.Title)
	b.WriteByte(' ')
	b.WriteString(ec.Alert.Message)
	if ec.Resource != nil && ec.Resource.Shape != "" {
		b.WriteByte(' ')
		b.WriteString(ec.Resource.Shape)
	}
	seen := map[string]bool{}
	for i, m := range ec.Metrics {
		if i >= 5 {
			break
		}
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		b.WriteByte(' ')
		b.WriteString(m.Name)
	}
	return p.Embed(ctx, b.String())
}
