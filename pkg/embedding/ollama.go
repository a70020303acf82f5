package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OllamaProvider embeds text via a local/remote Ollama server's
// /api/embeddings endpoint. Grounded on wessley-mvp's pkg/ollama/embed.go.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
	dim     int
}

// NewOllamaProvider builds a provider. dim is the known output dimension of
// model (e.g. 768 for nomic-embed-text), used to validate responses.
func NewOllamaProvider(baseURL, model string, dim int, client *http.Client) *OllamaProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaProvider{baseURL: baseURL, model: model, client: client, dim: dim}
}

func (p *OllamaProvider) ProviderType() string { return "ollama" }
func (p *OllamaProvider) Dimension() int       { return p.dim }

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: p.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: p.ProviderType(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: p.ProviderType(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var out ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}

	vec := make([]float32, len(out.Embedding))
	for i, x := range out.Embedding {
		vec[i] = float32(x)
	}
	if p.dim == 0 {
		p.dim = len(vec)
	} else if len(vec) != p.dim {
		return nil, &ProviderError{Provider: p.ProviderType(), Err: fmt.Errorf("embedding has dimension %d, want %d", len(vec), p.dim)}
	}
	return Normalize(vec), nil
}

// EmbedBatch embeds each text in order, preserving input order. Ollama's
// embeddings endpoint has no native batch form, so this issues one request
// per text.
func (p *OllamaProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := p.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
