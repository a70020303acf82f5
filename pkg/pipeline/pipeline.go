// Package pipeline wires C2, C5 and C6 into the end-to-end request path
// (spec §4.9): enrich an alert, retrieve the runbook chunks it implies, and
// generate a checklist from them.
package pipeline

import (
	"context"
	"fmt"

	"github.com/tarsy-labs/checklist-rag/pkg/alert"
	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
	"github.com/tarsy-labs/checklist-rag/pkg/enrich"
	"github.com/tarsy-labs/checklist-rag/pkg/retriever"
)

// DefaultTopK is used when a caller does not specify how many runbook
// chunks to retrieve.
const DefaultTopK = 5

// Pipeline sequences enrichment, retrieval and generation for a single
// alert. It does not dispatch the resulting checklist anywhere; that is the
// caller's responsibility, fired off after the HTTP response is sent.
type Pipeline struct {
	enricher  *enrich.Enricher
	retriever *retriever.Retriever
	generator *checklist.Generator
}

func New(e *enrich.Enricher, r *retriever.Retriever, g *checklist.Generator) *Pipeline {
	return &Pipeline{enricher: e, retriever: r, generator: g}
}

// ProcessAlert runs C2 → C5 → C6 in sequence, propagating ctx (and its
// cancellation) to every stage. A cancelled ctx aborts the pipeline and
// returns the context's error rather than a partial checklist.
func (p *Pipeline) ProcessAlert(ctx context.Context, a alert.Alert, topK int) (checklist.Checklist, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	ec, err := p.enricher.Enrich(ctx, a)
	if err != nil {
		return checklist.Checklist{}, fmt.Errorf("enrich: %w", err)
	}

	chunks, err := p.retriever.Retrieve(ctx, ec, topK)
	if err != nil {
		return checklist.Checklist{}, fmt.Errorf("retrieve: %w", err)
	}

	cl, err := p.generator.Generate(ctx, ec, chunks)
	if err != nil {
		return checklist.Checklist{}, fmt.Errorf("generate: %w", err)
	}
	return *cl, nil
}
