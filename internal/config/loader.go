package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/substantialcattle5/cipherdesk/internal/atomic"
	"github.com/substantialcattle5/cipherdesk/internal/constants"
)

// DefaultPath returns $HOME/.cipherdesk.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, constants.ConfigFileName), nil
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error; a malformed or invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading configuration %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := atomic.WriteFile(path, data, constants.SecureFilePerms); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
