package runbook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tarsy-labs/checklist-rag/pkg/embedding"
	"github.com/tarsy-labs/checklist-rag/pkg/vectorstore"
)

// Service implements C7: enumerate a runbook corpus, parse front-matter,
// chunk, embed, and index each document into the vector store.
type Service struct {
	source   Source
	embedder embedding.Provider
	store    vectorstore.Store
	opts     ChunkerOptions
	logger   *slog.Logger

	pathLocks sync.Map // runbook path -> *sync.Mutex
}

func NewService(source Source, embedder embedding.Provider, store vectorstore.Store, opts ChunkerOptions, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, embedder: embedder, store: store, opts: opts, logger: logger}
}

// Ingest fetches one runbook, parses and chunks it, embeds every chunk, and
// replaces any prior chunks for this path with the new set (delete-then-
// insert, serialized per path so concurrent ingestions of the same path
// observe one consistent final state).
func (s *Service) Ingest(ctx context.Context, path string) error {
	lock, _ := s.pathLocks.LoadOrStore(path, &sync.Mutex{})
	lock.(*sync.Mutex).Lock()
	defer lock.(*sync.Mutex).Unlock()

	content, err := s.source.Fetch(ctx, path)
	if err != nil {
		return fmt.Errorf("runbook: fetch %s: %w", path, err)
	}

	chunks := ChunkDocument(path, content, s.opts)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("runbook: embed chunks of %s: %w", path, err)
	}

	records := make([]vectorstore.RunbookChunk, len(chunks))
	for i, c := range chunks {
		records[i] = vectorstore.RunbookChunk{
			ID:               c.ID,
			RunbookPath:      path,
			SectionTitle:     c.SectionTitle,
			Content:          c.Content,
			Tags:             c.Tags,
			ApplicableShapes: c.ApplicableShapes,
			Embedding:        vectors[i],
		}
	}

	if err := s.store.Delete(path); err != nil {
		return fmt.Errorf("runbook: delete prior chunks of %s: %w", path, err)
	}
	if err := s.store.StoreBatch(records); err != nil {
		return fmt.Errorf("runbook: store chunks of %s: %w", path, err)
	}
	return nil
}

// IngestAll lists every markdown document in the source container and
// ingests each one. Per-path failures are logged and do not abort the
// batch; IngestAll returns after every path has settled.
func (s *Service) IngestAll(ctx context.Context) error {
	paths, err := s.source.List(ctx)
	if err != nil {
		return fmt.Errorf("runbook: list source: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		path := p
		g.Go(func() error {
			if err := s.Ingest(gctx, path); err != nil {
				s.logger.Warn("runbook: ingest failed, continuing batch", "path", path, "err", err)
			}
			return nil
		})
	}
	return g.Wait()
}
