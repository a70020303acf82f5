package checklist

import (
	"context"
	"time"

	"github.com/tarsy-labs/checklist-rag/pkg/enrich"
	"github.com/tarsy-labs/checklist-rag/pkg/retriever"
)

// Generator implements C6: prompt composition, LLM invocation, and
// structured-output parsing with fallback.
type Generator struct {
	llm  LLM
	opts GenerateOptions
	now  func() time.Time
}

func New(llm LLM, opts GenerateOptions) *Generator {
	if opts.MaxTokens == 0 {
		opts = DefaultGenerateOptions()
	}
	return &Generator{llm: llm, opts: opts, now: time.Now}
}

// Generate produces a Checklist from enriched context and retrieved chunks.
// LLM errors propagate to the caller verbatim; a parse failure never
// errors, it triggers the Markdown fallback (spec §7).
func (g *Generator) Generate(ctx context.Context, ec enrich.EnrichedContext, chunks []retriever.RetrievedChunk) (*Checklist, error) {
	prompt := BuildPrompt(ec, chunks)

	raw, err := g.llm.GenerateText(ctx, prompt, g.opts)
	if err != nil {
		return nil, err
	}

	summary, steps := ParseResponse(raw)

	return &Checklist{
		AlertID:         ec.Alert.ID,
		Summary:         summary,
		Steps:           steps,
		SourceRunbooks:  distinctRunbookPaths(chunks),
		GeneratedAt:     g.now(),
		LLMProviderUsed: g.llm.ProviderID(),
	}, nil
}

// distinctRunbookPaths derives sourceRunbooks as the distinct set of
// chunk.runbookPath from the input chunks, in first-appearance order.
func distinctRunbookPaths(chunks []retriever.RetrievedChunk) []string {
	seen := make(map[string]bool, len(chunks))
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Chunk.RunbookPath == "" || seen[c.Chunk.RunbookPath] {
			continue
		}
		seen[c.Chunk.RunbookPath] = true
		out = append(out, c.Chunk.RunbookPath)
	}
	return out
}
