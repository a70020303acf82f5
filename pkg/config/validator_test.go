package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Cloud: CloudConfig{
			Provider: CloudProviderLocal,
			Local:    &LocalCloudConfig{Directory: "/runbooks"},
		},
		VectorStore: VectorStoreConfig{
			Provider:  VectorStoreProviderLocal,
			Dimension: 1536,
		},
		LLM: LLMConfig{
			Provider: LLMProviderOllama,
			Ollama: &ProviderModelsConfig{
				TextModel:      "llama3",
				EmbeddingModel: "nomic-embed-text",
			},
		},
		Output: OutputConfig{
			File: FileOutputConfig{Enabled: true, OutputDirectory: "./output"},
		},
		Runbooks: RunbooksConfig{
			MinChunkChars: 200,
			MaxChunkChars: 4000,
		},
	}
}

func TestValidateAll_ValidConfigPasses(t *testing.T) {
	assert.NoError(t, NewValidator(validConfig()).ValidateAll())
}

func TestValidateCloud(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "invalid provider",
			mutate:    func(c *Config) { c.Cloud.Provider = "gcp" },
			wantField: "provider",
		},
		{
			name: "aws missing bucket",
			mutate: func(c *Config) {
				c.Cloud.Provider = CloudProviderAWS
				c.Cloud.Local = nil
				c.Cloud.AWS = &AWSCloudConfig{Region: "us-east-1"}
			},
			wantField: "bucket",
		},
		{
			name: "oci missing bucket",
			mutate: func(c *Config) {
				c.Cloud.Provider = CloudProviderOCI
				c.Cloud.Local = nil
				c.Cloud.OCI = &OCICloudConfig{Region: "us-phoenix-1"}
			},
			wantField: "bucket",
		},
		{
			name: "local missing directory",
			mutate: func(c *Config) {
				c.Cloud.Local = &LocalCloudConfig{}
			},
			wantField: "directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator(cfg).ValidateAll()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateVectorStore(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "invalid provider",
			mutate:    func(c *Config) { c.VectorStore.Provider = "pinecone" },
			wantField: "provider",
		},
		{
			name:      "non-positive dimension",
			mutate:    func(c *Config) { c.VectorStore.Dimension = 0 },
			wantField: "dimension",
		},
		{
			name: "qdrant backend missing address",
			mutate: func(c *Config) {
				c.VectorStore.Provider = VectorStoreProviderAWS
				c.VectorStore.Qdrant = &QdrantConfig{Collection: "runbooks"}
			},
			wantField: "address",
		},
		{
			name: "qdrant backend missing collection",
			mutate: func(c *Config) {
				c.VectorStore.Provider = VectorStoreProviderOCI
				c.VectorStore.Qdrant = &QdrantConfig{Address: "localhost:6334"}
			},
			wantField: "collection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator(cfg).ValidateAll()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateLLM(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "invalid provider",
			mutate: func(c *Config) { c.LLM.Provider = "openai" },
		},
		{
			name: "ollama missing models",
			mutate: func(c *Config) {
				c.LLM.Ollama = &ProviderModelsConfig{TextModel: "llama3"}
			},
		},
		{
			name: "aws-bedrock missing models",
			mutate: func(c *Config) {
				c.LLM.Provider = LLMProviderAWSBedrock
				c.LLM.Ollama = nil
				c.LLM.AWSBedrock = &ProviderModelsConfig{TextModel: "anthropic.claude-3-sonnet"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, NewValidator(cfg).ValidateAll())
		})
	}
}

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name: "file output enabled without directory",
			mutate: func(c *Config) {
				c.Output.File = FileOutputConfig{Enabled: true}
			},
			wantField: "outputDirectory",
		},
		{
			name: "webhook missing name",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{{Type: DestinationTypeHTTP, URL: "https://example.com"}}
			},
			wantField: "name",
		},
		{
			name: "duplicate webhook names",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{
					{Name: "a", Type: DestinationTypeHTTP, URL: "https://example.com/1"},
					{Name: "a", Type: DestinationTypeHTTP, URL: "https://example.com/2"},
				}
			},
			wantField: "name",
		},
		{
			name: "invalid webhook type",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{{Name: "a", Type: "email"}}
			},
			wantField: "type",
		},
		{
			name: "http webhook missing url",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{{Name: "a", Type: DestinationTypeHTTP}}
			},
			wantField: "url",
		},
		{
			name: "http webhook malformed url",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{{Name: "a", Type: DestinationTypeHTTP, URL: "not a url"}}
			},
			wantField: "url",
		},
		{
			name: "negative retry count",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{
					{Name: "a", Type: DestinationTypeHTTP, URL: "https://example.com", RetryCount: -1},
				}
			},
			wantField: "retryCount",
		},
		{
			name: "negative retry delay",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{
					{Name: "a", Type: DestinationTypeHTTP, URL: "https://example.com", RetryDelayMs: -1},
				}
			},
			wantField: "retryDelayMs",
		},
		{
			name: "slack webhook without integrations.slack",
			mutate: func(c *Config) {
				c.Output.Webhooks = []WebhookConfig{{Name: "a", Type: DestinationTypeSlack}}
			},
			wantField: "channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator(cfg).ValidateAll()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateOutput_SlackWebhookWithChannelPasses(t *testing.T) {
	cfg := validConfig()
	cfg.Output.Webhooks = []WebhookConfig{{Name: "on-call", Type: DestinationTypeSlack}}
	cfg.Integrations.Slack = &SlackConfig{Channel: "C0123456"}

	assert.NoError(t, NewValidator(cfg).ValidateAll())
}

func TestValidateRunbooks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "non-positive minChunkChars",
			mutate:    func(c *Config) { c.Runbooks.MinChunkChars = 0 },
			wantField: "minChunkChars",
		},
		{
			name: "maxChunkChars below minChunkChars",
			mutate: func(c *Config) {
				c.Runbooks.MinChunkChars = 500
				c.Runbooks.MaxChunkChars = 100
			},
			wantField: "maxChunkChars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator(cfg).ValidateAll()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestGitHubConfigResolvedCacheTTLIntegration(t *testing.T) {
	cfg := validConfig()
	cfg.Runbooks.GitHub = &GitHubConfig{RepoURL: "https://github.com/org/runbooks", CacheTTL: "10m"}

	assert.NoError(t, NewValidator(cfg).ValidateAll())
	assert.Equal(t, 10*time.Minute, cfg.Runbooks.GitHub.ResolvedCacheTTL(time.Hour))
}
