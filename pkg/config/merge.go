package config

import (
	"fmt"

	"dario.cat/mergo"
)

// mergeOntoDefaults overlays the user-supplied YAML config onto the
// built-in defaults, the same way the teacher's loader merges queue config:
// start from defaults, then let non-zero user values win.
func mergeOntoDefaults(defaults *Config, user *Config) (*Config, error) {
	if err := mergo.Merge(defaults, user, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge user config onto defaults: %w", err)
	}
	return defaults, nil
}
