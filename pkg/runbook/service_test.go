package runbook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsy-labs/checklist-rag/pkg/vectorstore"
)

type fakeEmbedder struct{ dim int }

func (f *fakeEmbedder) ProviderType() string { return "fake" }
func (f *fakeEmbedder) Dimension() int       { return f.dim }
func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, f.dim), nil
}
func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.dim)
	}
	return out, nil
}

func writeRunbook(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestService_Ingest_StoresChunksForPath(t *testing.T) {
	dir := t.TempDir()
	writeRunbook(t, dir, "memory.md", "---\ntitle: Memory\ntags: [memory]\n---\n\n## Diagnose\nRun `free -h` to inspect memory.\n")

	source := NewLocalSource(dir)
	store := vectorstore.NewLocalStore(0)
	svc := NewService(source, &fakeEmbedder{dim: 3}, store, ChunkerOptions{}, nil)

	path := filepath.Join(dir, "memory.md")
	require.NoError(t, svc.Ingest(context.Background(), path))

	got, err := store.Search(make([]float32, 3), 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, path, got[0].Chunk.RunbookPath)
}

func TestService_Ingest_IsIdempotentOnReingestion(t *testing.T) {
	dir := t.TempDir()
	writeRunbook(t, dir, "cpu.md", "## CPU\nCheck `top`.\n")
	source := NewLocalSource(dir)
	store := vectorstore.NewLocalStore(0)
	svc := NewService(source, &fakeEmbedder{dim: 2}, store, ChunkerOptions{}, nil)
	path := filepath.Join(dir, "cpu.md")

	require.NoError(t, svc.Ingest(context.Background(), path))
	first, _ := store.Search(make([]float32, 2), 10)

	require.NoError(t, svc.Ingest(context.Background(), path))
	second, _ := store.Search(make([]float32, 2), 10)

	assert.Equal(t, len(first), len(second))
}

func TestService_IngestAll_ContinuesPastPerPathFailure(t *testing.T) {
	dir := t.TempDir()
	writeRunbook(t, dir, "good.md", "## Good\nThis one parses fine.\n")
	// A dangling symlink is listed as a runbook but cannot be read.
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "broken.md")))
	source := NewLocalSource(dir)
	store := vectorstore.NewLocalStore(0)
	svc := NewService(source, &fakeEmbedder{dim: 2}, store, ChunkerOptions{}, nil)

	err := svc.IngestAll(context.Background())
	require.NoError(t, err)

	got, _ := store.Search(make([]float32, 2), 10)
	assert.NotEmpty(t, got)
}
