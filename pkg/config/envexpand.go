package config

import (
	"log/slog"
	"os"
)

// ExpandEnv resolves shell-style ${VAR} and $VAR references in raw YAML
// against the process environment before it is parsed, so a value like
// cloud.aws.bucket: ${RUNBOOKS_BUCKET} never needs a templating engine.
// A reference to an unset variable expands to the empty string and is
// logged; ValidateAll is what actually rejects a field left empty this way.
func ExpandEnv(data []byte) []byte {
	var unset []string
	expanded := os.Expand(string(data), func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			unset = append(unset, name)
		}
		return v
	})
	for _, name := range unset {
		slog.Warn("config: environment variable referenced in config is not set", "var", name)
	}
	return []byte(expanded)
}
