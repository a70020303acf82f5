// Package vectorstore implements C4: persistence and top-K similarity
// search over RunbookChunk records, keyed by chunk id.
package vectorstore

import "fmt"

// RunbookChunk is one semantically coherent fragment of a runbook, the unit
// of retrieval and indexing. Produced by pkg/runbook (C7), stored here.
type RunbookChunk struct {
	ID               string
	RunbookPath      string
	SectionTitle     string
	Content          string
	Tags             []string
	ApplicableShapes []string
	Embedding        []float32
}

// ScoredChunk is the ephemeral result of a similarity search, before
// retriever-side metadata re-ranking is applied.
type ScoredChunk struct {
	Chunk           RunbookChunk
	SimilarityScore float64
}

// Store is the C4 contract: idempotent upsert by id, top-K cosine search,
// and delete-by-source-path for re-ingestion.
type Store interface {
	ProviderType() string
	Store(chunk RunbookChunk) error
	StoreBatch(chunks []RunbookChunk) error
	Search(queryEmbedding []float32, k int) ([]ScoredChunk, error)
	Delete(runbookPath string) error
	Count() (int, error)
}

// StoreError wraps a vector-store backend failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("vectorstore: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }
