package config

// Config is the fully resolved, validated configuration for checklistd.
// It is the primary object returned by Initialize() and used throughout
// the application.
type Config struct {
	configDir string

	Cloud        CloudConfig        `yaml:"cloud"`
	VectorStore  VectorStoreConfig  `yaml:"vectorStore"`
	LLM          LLMConfig          `yaml:"llm"`
	Output       OutputConfig       `yaml:"output"`
	Runbooks     RunbooksConfig     `yaml:"runbooks"`
	Integrations IntegrationsConfig `yaml:"integrations"`
}

// ConfigDir returns the configuration directory path.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// ConfigStats contains statistics about loaded configuration, logged once
// the configuration is initialized.
type ConfigStats struct {
	WebhookDestinations int
	FileOutputEnabled   bool
	VectorStoreProvider string
}

// Stats returns configuration statistics for startup logging.
func (c *Config) Stats() ConfigStats {
	return ConfigStats{
		WebhookDestinations: len(c.Output.Webhooks),
		FileOutputEnabled:   c.Output.File.Enabled,
		VectorStoreProvider: string(c.VectorStore.Provider),
	}
}
