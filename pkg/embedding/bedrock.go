package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// bedrockInvoker is the subset of *bedrockruntime.Client this package uses,
// so tests can substitute a fake.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider embeds text via an AWS Bedrock embedding model (e.g.
// amazon.titan-embed-text-v2:0).
type BedrockProvider struct {
	client  bedrockInvoker
	modelID string
	dim     int
}

// NewBedrockProvider builds a provider around an already-configured Bedrock
// runtime client (see cmd/checklistd for construction from aws-sdk-go-v2
// config.LoadDefaultConfig).
func NewBedrockProvider(client *bedrockruntime.Client, modelID string, dim int) *BedrockProvider {
	return &BedrockProvider{client: client, modelID: modelID, dim: dim}
}

func (p *BedrockProvider) ProviderType() string { return "aws-bedrock" }
func (p *BedrockProvider) Dimension() int       { return p.dim }

type titanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type titanEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (p *BedrockProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(titanEmbedRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("bedrock: encode request: %w", err)
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, &ProviderError{Provider: p.ProviderType(), Err: err}
	}

	var resp titanEmbedResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("bedrock: decode response: %w", err)
	}
	if p.dim == 0 {
		p.dim = len(resp.Embedding)
	}
	return Normalize(resp.Embedding), nil
}

func (p *BedrockProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
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
