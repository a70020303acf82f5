package runbook

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMinChunkChars and DefaultMaxChunkChars bound the enforced chunk
	// size window from spec §4.7.
	DefaultMinChunkChars = 200
	DefaultMaxChunkChars = 4000
)

// FrontMatter holds the recognized keys from a runbook's YAML front-matter
// block (spec §6's "Runbook on-disk format").
type FrontMatter struct {
	Title             string   `yaml:"title"`
	Tags              []string `yaml:"tags"`
	ApplicableShapes  []string `yaml:"applicable_shapes"`
}

// RawSection is one heading-delimited fragment of the document body, before
// size enforcement.
type RawSection struct {
	Title   string
	Content string
}

// ChunkerOptions bounds chunk size. Zero values fall back to the package
// defaults.
type ChunkerOptions struct {
	MinChunkChars int
	MaxChunkChars int
}

func (o ChunkerOptions) withDefaults() ChunkerOptions {
	if o.MinChunkChars <= 0 {
		o.MinChunkChars = DefaultMinChunkChars
	}
	if o.MaxChunkChars <= 0 {
		o.MaxChunkChars = DefaultMaxChunkChars
	}
	return o
}

// Chunk is one size-enforced, ordered fragment ready for embedding.
type Chunk struct {
	ID               string
	SectionTitle     string
	Content          string
	Tags             []string
	ApplicableShapes []string
}

// ParseFrontMatter splits a leading "---" delimited YAML block from the
// document body. Absent or malformed front-matter yields a zero FrontMatter
// and the document returned unchanged.
func ParseFrontMatter(doc string) (FrontMatter, string) {
	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return FrontMatter{}, doc
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return FrontMatter{}, doc
	}

	var fm FrontMatter
	yamlBlock := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return FrontMatter{}, doc
	}

	body := strings.Join(lines[end+1:], "\n")
	return fm, strings.TrimLeft(body, "\n")
}

// splitSections divides the body at H2 (##) and H3 (###) heading lines,
// keeping fenced code blocks (```...```) atomic so a heading-like line
// inside a code fence never starts a new section.
func splitSections(body string) []RawSection {
	lines := strings.Split(body, "\n")
	var sections []RawSection
	var current RawSection
	inFence := false

	flush := func() {
		content := strings.TrimSpace(current.Content)
		if content != "" || current.Title != "" {
			current.Content = content
			sections = append(sections, current)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			current.Content += line + "\n"
			continue
		}
		if !inFence && isHeading(trimmed) {
			flush()
			current = RawSection{Title: strings.TrimSpace(strings.TrimLeft(trimmed, "#"))}
			continue
		}
		current.Content += line + "\n"
	}
	flush()

	if len(sections) == 0 {
		return []RawSection{{Title: "", Content: strings.TrimSpace(body)}}
	}
	return sections
}

func isHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "### ") ||
		trimmed == "##" || trimmed == "###"
}

// ChunkDocument applies front-matter parsing, heading-based splitting, and size
// enforcement (merge-forward small sections, hard-split over-long ones on
// paragraph boundaries) to produce the final ordered, deterministically-id'd
// chunk list for runbookPath.
func ChunkDocument(runbookPath, doc string, opts ChunkerOptions) []Chunk {
	opts = opts.withDefaults()
	fm, body := ParseFrontMatter(doc)
	sections := splitSections(body)
	merged := enforceMinSize(sections, opts.MinChunkChars)

	var out []Chunk
	ordinal := 0
	for _, sec := range merged {
		for _, piece := range hardSplit(sec.Content, opts.MaxChunkChars) {
			out = append(out, Chunk{
				ID:               chunkID(runbookPath, ordinal),
				SectionTitle:     sec.Title,
				Content:          piece,
				Tags:             fm.Tags,
				ApplicableShapes: fm.ApplicableShapes,
			})
			ordinal++
		}
	}
	return out
}

// enforceMinSize merges a section shorter than minChars forward into the
// next section, preserving document order. The final section, if still
// short, is merged backward instead since there is no "next".
func enforceMinSize(sections []RawSection, minChars int) []RawSection {
	if len(sections) <= 1 {
		return sections
	}
	var out []RawSection
	pending := RawSection{}
	havePending := false

	for i, sec := range sections {
		merged := sec
		if havePending {
			merged = RawSection{Title: pending.Title, Content: pending.Content + "\n\n" + sec.Content}
			havePending = false
		}
		if len(merged.Content) < minChars {
			if i < len(sections)-1 {
				pending = merged
				havePending = true
				continue
			}
			if len(out) > 0 {
				out[len(out)-1].Content += "\n\n" + merged.Content
				continue
			}
		}
		out = append(out, merged)
	}
	if havePending {
		if len(out) > 0 {
			out[len(out)-1].Content += "\n\n" + pending.Content
		} else {
			out = append(out, pending)
		}
	}
	return out
}

// hardSplit breaks content longer than maxChars on paragraph boundaries
// (blank lines), never inside a fenced code block.
func hardSplit(content string, maxChars int) []string {
	if len(content) <= maxChars {
		return []string{content}
	}

	paragraphs := strings.Split(content, "\n\n")
	var pieces []string
	var cur strings.Builder
	inFence := false

	flush := func() {
		if cur.Len() > 0 {
			pieces = append(pieces, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
	}

	for _, p := range paragraphs {
		if !inFence && cur.Len() > 0 && cur.Len()+len(p)+2 > maxChars {
			flush()
		}
		if strings.Count(p, "```")%2 == 1 {
			inFence = !inFence
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(p)
	}
	flush()

	if len(pieces) == 0 {
		return []string{content}
	}
	return pieces
}

func chunkID(runbookPath string, ordinal int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", runbookPath, ordinal)))
	return hex.EncodeToString(sum[:])
}
