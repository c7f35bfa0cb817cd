// Package config loads optional REPL/CLI settings from a YAML file.
//
// Grounded on the teacher's only serialization dependency, gopkg.in/yaml.v3
// (conformance/loader.go, conformance/schema.go): tib reuses it for a second,
// production home — a ".tibrc.yaml" an operator can drop in the working
// directory (or name with -config) to override the unset-variable PRNG seed and the REPL prompt string,
// without touching the language itself.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPrompt is spec.md §6's documented REPL prompt: ":" on its own line.
const DefaultPrompt = ":"

// Config is the optional settings file, ".tibrc.yaml" by convention.
// Any field left unset keeps spec.md's documented default.
type Config struct {
	// Seed, if non-nil, seeds the Context's unset-variable RNG
	// deterministically (spec.md §3, §9) instead of using a process seed.
	// A pointer so "absent" and "explicitly 0" are distinguishable.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Prompt overrides spec.md §6's ":" REPL prompt.
	Prompt string `yaml:"prompt,omitempty"`
}

// Load reads and parses path. A missing file is not an error — it returns
// a zero Config so callers fall back to spec.md's defaults — but a file
// that exists and fails to parse is.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// PromptOrDefault returns c.Prompt, falling back to DefaultPrompt when
// unset.
func (c Config) PromptOrDefault() string {
	if c.Prompt == "" {
		return DefaultPrompt
	}
	return c.Prompt
}
