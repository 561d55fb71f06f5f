// Package config reads the optional klarlint.toml rule configuration.
// The analyzer's behavior is fully determined by this configuration
// plus the input files; nothing else is consulted and nothing is
// written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file the loader searches for.
const FileName = "klarlint.toml"

// AnalyzeConfig holds run-level options.
type AnalyzeConfig struct {
	// Exclude lists directory names and glob patterns skipped during
	// discovery.
	Exclude []string `toml:"exclude"`
	// Extensions lists the file extensions analyzed. Default: .klar.
	Extensions []string `toml:"extensions"`
	// Jobs caps the worker pool; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

// Config is the full klarlint.toml shape.
type Config struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	// Rules maps rule id -> enabled. Missing ids stay enabled.
	Rules map[string]bool `toml:"rules"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			Extensions: []string{".klar"},
			Exclude:    []string{"target", "vendor", ".git"},
		},
		Rules: map[string]bool{},
	}
}

// Find walks up from startDir looking for klarlint.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses one configuration file, filling unset fields from the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if len(cfg.Analyze.Extensions) == 0 {
		cfg.Analyze.Extensions = []string{".klar"}
	}
	return cfg, nil
}

// Discover finds and loads the nearest configuration, or returns the
// defaults when none exists.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
