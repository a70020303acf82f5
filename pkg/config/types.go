package config

import "time"

// CloudConfig selects and parameterizes the cloud a runbook object store
// lives in (spec.md §6: cloud.provider, cloud.<provider>.*).
type CloudConfig struct {
	Provider CloudProvider     `yaml:"provider"`
	AWS      *AWSCloudConfig   `yaml:"aws,omitempty"`
	OCI      *OCICloudConfig   `yaml:"oci,omitempty"`
	Local    *LocalCloudConfig `yaml:"local,omitempty"`
}

// AWSCloudConfig holds S3-backed runbook source parameters.
type AWSCloudConfig struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix,omitempty"`
}

// OCICloudConfig holds OCI Object Storage runbook source parameters.
// OCI access itself is out of the retrieved pack's dependency surface; this
// struct exists so cloud.provider=oci validates and surfaces a clear
// "not implemented" error rather than silently falling back (see DESIGN.md).
type OCICloudConfig struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
}

// LocalCloudConfig points the runbook source at a directory on disk.
type LocalCloudConfig struct {
	Directory string `yaml:"directory"`
}

// VectorStoreConfig selects and parameterizes the C4 backend.
type VectorStoreConfig struct {
	Provider  VectorStoreProvider `yaml:"provider"`
	Dimension int                 `yaml:"dimension"`
	Qdrant    *QdrantConfig       `yaml:"qdrant,omitempty"`
}

// QdrantConfig holds the managed vector store connection parameters, used
// whenever VectorStoreConfig.Provider.UsesQdrant() is true.
type QdrantConfig struct {
	Address    string `yaml:"address"`
	Collection string `yaml:"collection"`
}

// LLMConfig selects and parameterizes the C3/C6 provider.
type LLMConfig struct {
	Provider   LLMProviderName        `yaml:"provider"`
	Ollama     *ProviderModelsConfig  `yaml:"ollama,omitempty"`
	AWSBedrock *ProviderModelsConfig  `yaml:"aws-bedrock,omitempty"`
	Generate   *GenerateOptionsConfig `yaml:"generate,omitempty"`
}

// ProviderModelsConfig names the text/embedding models an LLM provider
// exposes, and (for self-hosted providers like Ollama) its base URL.
type ProviderModelsConfig struct {
	TextModel      string `yaml:"textModel"`
	EmbeddingModel string `yaml:"embeddingModel"`
	BaseURL        string `yaml:"baseUrl,omitempty"`
}

// GenerateOptionsConfig overrides checklist.DefaultGenerateOptions.
type GenerateOptionsConfig struct {
	Temperature float32 `yaml:"temperature,omitempty"`
	MaxTokens   int     `yaml:"maxTokens,omitempty"`
}

// OutputConfig configures C8's built-in file destination and the list of
// configured webhook destinations.
type OutputConfig struct {
	File     FileOutputConfig `yaml:"file"`
	Webhooks []WebhookConfig  `yaml:"webhooks,omitempty"`
}

// FileOutputConfig configures the spec-mandated built-in file destination.
type FileOutputConfig struct {
	Enabled         bool   `yaml:"enabled"`
	OutputDirectory string `yaml:"outputDirectory,omitempty"`
}

// WebhookConfig describes one output.webhooks[] entry.
type WebhookConfig struct {
	Name         string            `yaml:"name" validate:"required"`
	Type         DestinationType   `yaml:"type" validate:"required"`
	URL          string            `yaml:"url,omitempty"`
	Enabled      bool              `yaml:"enabled"`
	Headers      map[string]string `yaml:"headers,omitempty"`
	Filter       WebhookFilter     `yaml:"filter,omitempty"`
	RetryCount   int               `yaml:"retryCount,omitempty"`
	RetryDelayMs int               `yaml:"retryDelayMs,omitempty"`
}

// WebhookFilter mirrors webhook.Filter at the config layer.
type WebhookFilter struct {
	Severities     []string          `yaml:"severities,omitempty"`
	RequiredLabels map[string]string `yaml:"requiredLabels,omitempty"`
}

// RunbooksConfig controls C7 ingestion behavior and optional supplemented
// ingestion sources.
type RunbooksConfig struct {
	IngestOnStartup bool          `yaml:"ingestOnStartup"`
	GitHub          *GitHubConfig `yaml:"github,omitempty"`
	MinChunkChars   int           `yaml:"minChunkChars,omitempty"`
	MaxChunkChars   int           `yaml:"maxChunkChars,omitempty"`
}

// GitHubConfig resolves the supplemented GitHub-backed runbook source.
type GitHubConfig struct {
	RepoURL        string   `yaml:"repoUrl"`
	TokenEnv       string   `yaml:"tokenEnv,omitempty"`
	CacheTTL       string   `yaml:"cacheTtl,omitempty"`
	AllowedDomains []string `yaml:"allowedDomains,omitempty"`
}

// ResolvedCacheTTL parses CacheTTL, falling back to def on empty or
// unparseable input.
func (g *GitHubConfig) ResolvedCacheTTL(def time.Duration) time.Duration {
	if g == nil || g.CacheTTL == "" {
		return def
	}
	d, err := time.ParseDuration(g.CacheTTL)
	if err != nil {
		return def
	}
	return d
}

// IntegrationsConfig holds credentials for supplemented notification
// channels that a webhook destination type needs beyond what
// output.webhooks[] itself carries.
type IntegrationsConfig struct {
	Slack *SlackConfig `yaml:"slack,omitempty"`
}

// SlackConfig holds Slack notification settings (supplemented feature,
// grounded on the teacher's system.slack YAML section).
type SlackConfig struct {
	TokenEnv     string `yaml:"tokenEnv,omitempty"`
	Channel      string `yaml:"channel,omitempty"`
	DashboardURL string `yaml:"dashboardUrl,omitempty"`
}
