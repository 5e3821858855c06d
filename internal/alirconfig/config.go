// Package alirconfig is the driver-side configuration for a compiler run:
// how strict diagnostics should be and how far the "did you mean" hint
// search reaches. Nothing in internal/sema, internal/irgen, or
// internal/irverify imports this package — each takes the values it needs
// as plain arguments, so the core stays usable without a config file.
package alirconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the set of knobs a compiler invocation can tune.
type Config struct {
	// WarningsAsErrors promotes every diag.SeverityWarning to count toward
	// the error total a pipeline stage checks before continuing.
	WarningsAsErrors bool `yaml:"warnings_as_errors"`

	// EnableHints is loaded from the config file but no pipeline stage reads
	// it: internal/sema always emits SEM013 info diagnostics and "did you
	// mean" hints.
	EnableHints bool `yaml:"enable_hints"`

	// MaxHintDistance is loaded and checked to be >= 0, but no pipeline
	// stage reads it: the "did you mean" search in internal/sema uses a
	// fixed Levenshtein limit (1 for names of up to 3 runes, else 2).
	MaxHintDistance int `yaml:"max_hint_distance"`
}

// Default returns the configuration a bare `alirc check` run uses absent a
// config file.
func Default() Config {
	return Config{WarningsAsErrors: false, EnableHints: true, MaxHintDistance: 2}
}

// Load reads a YAML config file, starting from Default and overwriting only
// the fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("alirconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("alirconfig: parse %s: %w", path, err)
	}
	if cfg.MaxHintDistance < 0 {
		return cfg, fmt.Errorf("alirconfig: max_hint_distance must be >= 0, got %d", cfg.MaxHintDistance)
	}
	return cfg, nil
}
