package siteconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"yahb/internal/recipe"
)

// Config is the optional site configuration file. Every field has a
// working default; a missing file is not an error for callers that use
// DefaultPath.
type Config struct {
	CudaArchs []string `yaml:"cuda_archs"` // subset of supported tags; empty means all
	Mirror    string   `yaml:"mirror"`     // base URL overriding upstream download hosts
	CacheDir  string   `yaml:"cache_dir"`
	Workers   int      `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Workers: 5}
}

// DefaultPath returns the conventional site config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".yahb", "config.yaml")
}

// Load reads and validates a YAML site configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing site config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("site config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects impossible settings.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	for _, arch := range c.CudaArchs {
		if !supportedArch(arch) {
			return fmt.Errorf("unknown cuda arch %q", arch)
		}
	}
	return nil
}

func supportedArch(arch string) bool {
	for _, v := range recipe.CudaArchValues {
		if v == arch {
			return true
		}
	}
	return false
}

// Archs returns the configured CUDA architecture tags, defaulting to the
// full supported enumeration.
func (c *Config) Archs() []string {
	if len(c.CudaArchs) > 0 {
		return c.CudaArchs
	}
	return recipe.CudaArchValues
}

// Cache returns the configured cache directory, defaulting under the
// user's home.
func (c *Config) Cache() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".yahb", "cache"), nil
}
