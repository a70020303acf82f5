package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load checklist.yaml from configDir
//  2. Expand environment variables
//  3. Parse YAML into a Config
//  4. Merge onto built-in defaults
//  5. Apply defaults that can't be expressed via a merge (per-webhook retry)
//  6. Validate all configuration
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	stats := cfg.Stats()
	log.Info("configuration initialized",
		"vector_store_provider", stats.VectorStoreProvider,
		"webhook_destinations", stats.WebhookDestinations,
		"file_output_enabled", stats.FileOutputEnabled)

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	user, err := loader.loadChecklistYAML()
	if err != nil {
		return nil, NewLoadError("checklist.yaml", err)
	}

	merged, err := mergeOntoDefaults(DefaultConfig(), user)
	if err != nil {
		return nil, err
	}
	merged.configDir = configDir

	applyWebhookDefaults(merged)

	return merged, nil
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadChecklistYAML() (*Config, error) {
	path := filepath.Join(l.configDir, "checklist.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	data = ExpandEnv(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &cfg, nil
}
