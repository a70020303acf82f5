package config

import (
	"fmt"
	"net/url"
)

// Validator validates configuration comprehensively with clear error
// messages, in declaration order (fail-fast).
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll performs comprehensive validation, stopping at the first
// error.
func (v *Validator) ValidateAll() error {
	if err := v.validateCloud(); err != nil {
		return fmt.Errorf("cloud: %w", err)
	}
	if err := v.validateVectorStore(); err != nil {
		return fmt.Errorf("vectorStore: %w", err)
	}
	if err := v.validateLLM(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := v.validateOutput(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := v.validateRunbooks(); err != nil {
		return fmt.Errorf("runbooks: %w", err)
	}
	return nil
}

func (v *Validator) validateCloud() error {
	c := v.cfg.Cloud
	if !c.Provider.IsValid() {
		return NewValidationError("cloud", "provider", fmt.Errorf("%w: %q", ErrInvalidValue, c.Provider))
	}
	switch c.Provider {
	case CloudProviderAWS:
		if c.AWS == nil || c.AWS.Bucket == "" {
			return NewValidationError("cloud.aws", "bucket", ErrMissingRequiredField)
		}
	case CloudProviderOCI:
		if c.OCI == nil || c.OCI.Bucket == "" {
			return NewValidationError("cloud.oci", "bucket", ErrMissingRequiredField)
		}
	case CloudProviderLocal:
		if c.Local == nil || c.Local.Directory == "" {
			return NewValidationError("cloud.local", "directory", ErrMissingRequiredField)
		}
	}
	return nil
}

func (v *Validator) validateVectorStore() error {
	vs := v.cfg.VectorStore
	if !vs.Provider.IsValid() {
		return NewValidationError("vectorStore", "provider", fmt.Errorf("%w: %q", ErrInvalidValue, vs.Provider))
	}
	if vs.Dimension <= 0 {
		return NewValidationError("vectorStore", "dimension", fmt.Errorf("%w: must be positive, got %d", ErrInvalidValue, vs.Dimension))
	}
	if vs.Provider.UsesQdrant() {
		if vs.Qdrant == nil || vs.Qdrant.Address == "" {
			return NewValidationError("vectorStore.qdrant", "address", ErrMissingRequiredField)
		}
		if vs.Qdrant.Collection == "" {
			return NewValidationError("vectorStore.qdrant", "collection", ErrMissingRequiredField)
		}
	}
	return nil
}

func (v *Validator) validateLLM() error {
	l := v.cfg.LLM
	if !l.Provider.IsValid() {
		return NewValidationError("llm", "provider", fmt.Errorf("%w: %q", ErrInvalidValue, l.Provider))
	}
	switch l.Provider {
	case LLMProviderOllama:
		if l.Ollama == nil || l.Ollama.TextModel == "" || l.Ollama.EmbeddingModel == "" {
			return NewValidationError("llm.ollama", "textModel/embeddingModel", ErrMissingRequiredField)
		}
	case LLMProviderAWSBedrock:
		if l.AWSBedrock == nil || l.AWSBedrock.TextModel == "" || l.AWSBedrock.EmbeddingModel == "" {
			return NewValidationError("llm.aws-bedrock", "textModel/embeddingModel", ErrMissingRequiredField)
		}
	}
	return nil
}

func (v *Validator) validateOutput() error {
	o := v.cfg.Output
	if o.File.Enabled && o.File.OutputDirectory == "" {
		return NewValidationError("output.file", "outputDirectory", ErrMissingRequiredField)
	}

	seen := make(map[string]bool, len(o.Webhooks))
	for _, w := range o.Webhooks {
		if w.Name == "" {
			return NewValidationError("output.webhooks", "name", ErrMissingRequiredField)
		}
		if seen[w.Name] {
			return NewValidationError("output.webhooks", "name", fmt.Errorf("%w: duplicate name %q", ErrInvalidValue, w.Name))
		}
		seen[w.Name] = true

		if !w.Type.IsValid() {
			return NewValidationError("output.webhooks", "type", fmt.Errorf("%w: %q", ErrInvalidValue, w.Type))
		}
		if w.Type == DestinationTypeHTTP {
			if w.URL == "" {
				return NewValidationError("output.webhooks", "url", ErrMissingRequiredField)
			}
			if _, err := url.ParseRequestURI(w.URL); err != nil {
				return NewValidationError("output.webhooks", "url", fmt.Errorf("%w: %v", ErrInvalidValue, err))
			}
		}
		if w.RetryCount < 0 {
			return NewValidationError("output.webhooks", "retryCount", fmt.Errorf("%w: must be non-negative", ErrInvalidValue))
		}
		if w.RetryDelayMs < 0 {
			return NewValidationError("output.webhooks", "retryDelayMs", fmt.Errorf("%w: must be non-negative", ErrInvalidValue))
		}
		if w.Type == DestinationTypeSlack && (v.cfg.Integrations.Slack == nil || v.cfg.Integrations.Slack.Channel == "") {
			return NewValidationError("integrations.slack", "channel", ErrMissingRequiredField)
		}
	}
	return nil
}

func (v *Validator) validateRunbooks() error {
	r := v.cfg.Runbooks
	if r.MinChunkChars <= 0 {
		return NewValidationError("runbooks", "minChunkChars", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if r.MaxChunkChars < r.MinChunkChars {
		return NewValidationError("runbooks", "maxChunkChars", fmt.Errorf("%w: must be >= minChunkChars", ErrInvalidValue))
	}
	return nil
}
