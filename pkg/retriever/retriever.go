// Package retriever implements C5: turning an EnrichedContext into a ranked
// list of RetrievedChunk suitable for prompt assembly.
package retriever

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/tarsy-labs/checklist-rag/pkg/embedding"
	"github.com/tarsy-labs/checklist-rag/pkg/enrich"
	"github.com/tarsy-labs/checklist-rag/pkg/vectorstore"
)

const (
	tagBoostIncrement = 0.1
	tagBoostCap       = 0.3
	shapeBoost        = 0.2
)

// RetrievedChunk is the result of retrieval: a chunk, its raw similarity,
// the additive metadata boost, and their sum.
type RetrievedChunk struct {
	Chunk           vectorstore.RunbookChunk
	SimilarityScore float64
	MetadataBoost   float64
	FinalScore      float64
}

// Retriever composes an embedding provider and a vector store into the C5
// retrieval algorithm.
type Retriever struct {
	embedder embedding.Provider
	store    vectorstore.Store
}

func New(embedder embedding.Provider, store vectorstore.Store) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve runs the full spec §4.5 algorithm: embed the context's query
// string, over-fetch K' = max(K, K*2) candidates, apply metadata boosts,
// re-sort by finalScore desc / id asc, and truncate to K. K<=0 is treated
// as 1.
func (r *Retriever) Retrieve(ctx context.Context, ec enrich.EnrichedContext, k int) ([]RetrievedChunk, error) {
	if k <= 0 {
		k = 1
	}

	queryVec, err := embedding.EmbedContext(ctx, r.embedder, ec)
	if err != nil {
		return nil, err
	}

	overFetch := k
	if k*2 > overFetch {
		overFetch = k * 2
	}

	scored, err := r.store.Search(queryVec, overFetch)
	if err != nil {
		return nil, err
	}

	dimensionValues := valuesOf(ec.Alert.Dimensions)
	labelValues := valuesOf(ec.Alert.Labels)
	var shape string
	if ec.Resource != nil {
		shape = ec.Resource.Shape
	}

	out := make([]RetrievedChunk, 0, len(scored))
	for _, sc := range scored {
		boost := metadataBoost(sc.Chunk, dimensionValues, labelValues, shape)
		out = append(out, RetrievedChunk{
			Chunk:           sc.Chunk,
			SimilarityScore: sc.SimilarityScore,
			MetadataBoost:   boost,
			FinalScore:      sc.SimilarityScore + boost,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalScore != out[j].FinalScore {
			return out[i].FinalScore > out[j].FinalScore
		}
		return out[i].Chunk.ID < out[j].Chunk.ID
	})

	if k < len(out) {
		out = out[:k]
	}
	return out, nil
}

func metadataBoost(chunk vectorstore.RunbookChunk, dimensionValues, labelValues map[string]bool, shape string) float64 {
	var boost float64

	tagHits := 0.0
	for _, tag := range chunk.Tags {
		if dimensionValues[tag] || labelValues[tag] {
			tagHits += tagBoostIncrement
		}
	}
	if tagHits > tagBoostCap {
		tagHits = tagBoostCap
	}
	boost += tagHits

	if shape != "" && matchesAnyShape(chunk.ApplicableShapes, shape) {
		boost += shapeBoost
	}
	return boost
}

func matchesAnyShape(patterns []string, shape string) bool {
	shapeLower := strings.ToLower(shape)
	for _, p := range patterns {
		ok, err := path.Match(strings.ToLower(p), shapeLower)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func valuesOf(m map[string]string) map[string]bool {
	out := make(map[string]bool, len(m))
	for _, v := range m {
		out[v] = true
	}
	return out
}
