// Package config implements component L: optional CLI-level defaults read
// once at process start from a YAML file, never consulted mid-parse
// (spec.md §5). Grounded on sqldef's `database.ParseGeneratorConfig`
// (YAML-file-to-struct loading ahead of the main run), using the same
// gopkg.in/yaml.v2 the rest of the pack's config loaders reach for.
package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the operator-synonym overrides and default mask bounds the
// CLI may pre-seed into (B)/(D)'s registration calls before any parse
// runs (spec.md §3 "Config").
type Config struct {
	OperatorAliases map[string]string `yaml:"operator_aliases"`
	DefaultMask4    int               `yaml:"default_mask4"`
	DefaultMask6    int               `yaml:"default_mask6"`
}

// Default returns a Config with the library's built-in defaults (mask /32
// and /128), used when no file is given.
func Default() Config {
	return Config{DefaultMask4: 32, DefaultMask6: 128}
}

// Load reads and parses a YAML config file. Any field the file omits
// keeps Default's value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
