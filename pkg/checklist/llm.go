package checklist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// GenerateOptions configures one LLM invocation.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// DefaultGenerateOptions matches spec §4.6: temperature ~0.2, maxTokens >= 2048.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Temperature: 0.2, MaxTokens: 2048}
}

// LLM generates free-form text completions for checklist prompts.
type LLM interface {
	ProviderID() string
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// OllamaLLM calls a local/remote Ollama server's /api/generate endpoint.
type OllamaLLM struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaLLM(baseURL, model string, client *http.Client) *OllamaLLM {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaLLM{baseURL: baseURL, model: model, client: client}
}

func (o *OllamaLLM) ProviderID() string { return "ollama:" + o.model }

type ollamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float32 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (o *OllamaLLM) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model: o.model, Prompt: prompt, Stream: false,
		Temperature: opts.Temperature, NumPredict: opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("checklist: encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("checklist: build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("checklist: ollama request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checklist: ollama unexpected status %d", resp.StatusCode)
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("checklist: decode ollama response: %w", err)
	}
	return out.Response, nil
}

// bedrockInvoker mirrors pkg/embedding's seam for test substitution.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockLLM invokes an AWS Bedrock text model (e.g. anthropic.claude
// family) via InvokeModel.
type BedrockLLM struct {
	client  bedrockInvoker
	modelID string
}

func NewBedrockLLM(client *bedrockruntime.Client, modelID string) *BedrockLLM {
	return &BedrockLLM{client: client, modelID: modelID}
}

func (b *BedrockLLM) ProviderID() string { return "aws-bedrock:" + b.modelID }

type bedrockInvokeRequest struct {
	Prompt            string  `json:"prompt"`
	MaxTokensToSample  int     `json:"max_tokens_to_sample"`
	Temperature        float32 `json:"temperature"`
}

type bedrockInvokeResponse struct {
	Completion string `json:"completion"`
}

func (b *BedrockLLM) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	body, err := json.Marshal(bedrockInvokeRequest{
		Prompt:            prompt,
		MaxTokensToSample: opts.MaxTokens,
		Temperature:       opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("checklist: encode bedrock request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("checklist: bedrock invoke: %w", err)
	}

	var resp bedrockInvokeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("checklist: decode bedrock response: %w", err)
	}
	return resp.Completion, nil
}
