package runbook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter_ExtractsKeys(t *testing.T) {
	doc := "---\ntitle: Memory Troubleshooting\ntags: [memory, linux]\napplicable_shapes: [\"VM.*\"]\n---\n\n## Body\ntext\n"
	fm, body := ParseFrontMatter(doc)
	assert.Equal(t, "Memory Troubleshooting", fm.Title)
	assert.Equal(t, []string{"memory", "linux"}, fm.Tags)
	assert.Equal(t, []string{"VM.*"}, fm.ApplicableShapes)
	assert.Contains(t, body, "## Body")
}

func TestParseFrontMatter_AbsentFrontMatterReturnsDocUnchanged(t *testing.T) {
	doc := "## Body\ntext\n"
	fm, body := ParseFrontMatter(doc)
	assert.Empty(t, fm.Title)
	assert.Equal(t, doc, body)
}

func TestChunkDocument_SplitsAtH2AndH3(t *testing.T) {
	doc := "## First\ncontent one\n\n### Second\ncontent two\n"
	chunks := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{MinChunkChars: 1, MaxChunkChars: 1000})
	require.Len(t, chunks, 2)
	assert.Equal(t, "First", chunks[0].SectionTitle)
	assert.Equal(t, "Second", chunks[1].SectionTitle)
}

func TestChunkDocument_FencedCodeBlockNeverSplit(t *testing.T) {
	doc := "## Commands\n```\n## not a heading\nstill code\n```\nmore text\n"
	chunks := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{MinChunkChars: 1, MaxChunkChars: 1000})
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "## not a heading")
}

func TestChunkDocument_MergesSmallSectionsForward(t *testing.T) {
	doc := "## A\nx\n\n## B\n" + strings.Repeat("y", 300) + "\n"
	chunks := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{MinChunkChars: 200, MaxChunkChars: 4000})
	require.Len(t, chunks, 1)
}

func TestChunkDocument_HardSplitsOverlongSection(t *testing.T) {
	para := strings.Repeat("word ", 50)
	doc := "## Huge\n" + strings.Repeat(para+"\n\n", 20)
	chunks := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{MinChunkChars: 1, MaxChunkChars: 500})
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Content), 600)
	}
}

func TestChunkDocument_DeterministicIDs(t *testing.T) {
	doc := "## A\nfoo\n\n## B\nbar\n"
	c1 := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{})
	c2 := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{})
	require.Equal(t, len(c1), len(c2))
	for i := range c1 {
		assert.Equal(t, c1[i].ID, c2[i].ID)
	}
}

func TestChunkDocument_OrderPreservesDocumentOrder(t *testing.T) {
	doc := "## First\na\n\n## Second\nb\n\n## Third\nc\n"
	chunks := ChunkDocument("runbooks/x.md", doc, ChunkerOptions{MinChunkChars: 1, MaxChunkChars: 1000})
	require.Len(t, chunks, 3)
	assert.Equal(t, "First", chunks[0].SectionTitle)
	assert.Equal(t, "Second", chunks[1].SectionTitle)
	assert.Equal(t, "Third", chunks[2].SectionTitle)
}
