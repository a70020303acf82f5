package config

// DefaultEmbeddingDimension is used when vectorStore.dimension is unset.
// Matches the Titan/Ollama embedding models named in spec.md's examples.
const DefaultEmbeddingDimension = 1536

// DefaultOutputDirectory is used when output.file is enabled without an
// explicit directory.
const DefaultOutputDirectory = "./output"

// DefaultMinChunkChars / DefaultMaxChunkChars mirror runbook.DefaultMinChunkChars
// / runbook.DefaultMaxChunkChars so config defaults stay in one place.
const (
	DefaultMinChunkChars = 200
	DefaultMaxChunkChars = 4000
)

// DefaultRetryCount / DefaultRetryDelayMs match webhook.DefaultRetryConfig.
const (
	DefaultRetryCount   = 3
	DefaultRetryDelayMs = 1000
)

// DefaultConfig returns the built-in configuration baseline. The loader
// merges the user's YAML on top of this with mergo.WithOverride, so any
// field the user leaves unset keeps its built-in value.
func DefaultConfig() *Config {
	return &Config{
		Cloud: CloudConfig{Provider: CloudProviderLocal},
		VectorStore: VectorStoreConfig{
			Provider:  VectorStoreProviderLocal,
			Dimension: DefaultEmbeddingDimension,
		},
		LLM: LLMConfig{
			Provider: LLMProviderOllama,
			Generate: &GenerateOptionsConfig{Temperature: 0.2, MaxTokens: 2048},
		},
		Output: OutputConfig{
			File: FileOutputConfig{Enabled: true, OutputDirectory: DefaultOutputDirectory},
		},
		Runbooks: RunbooksConfig{
			MinChunkChars: DefaultMinChunkChars,
			MaxChunkChars: DefaultMaxChunkChars,
		},
	}
}

// applyWebhookDefaults fills unset per-webhook retry fields. Run after the
// YAML merge, since mergo does not reach into slice elements.
func applyWebhookDefaults(cfg *Config) {
	for i := range cfg.Output.Webhooks {
		w := &cfg.Output.Webhooks[i]
		if w.RetryCount == 0 {
			w.RetryCount = DefaultRetryCount
		}
		if w.RetryDelayMs == 0 {
			w.RetryDelayMs = DefaultRetryDelayMs
		}
	}
}
