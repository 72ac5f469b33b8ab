/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
)

// Config is the content of ~/.cipherdesk.yaml.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Breach   BreachConfig   `yaml:"breach"`
	RSA      RSAConfig      `yaml:"rsa"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// AnalyzerConfig configures the password analyzer.
type AnalyzerConfig struct {
	CommonPasswordsFile string `yaml:"common_passwords_file,omitempty"`
	SpecialChars        string `yaml:"special_chars,omitempty"`
}

// BreachConfig configures the range API client.
type BreachConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Endpoint    string        `yaml:"endpoint"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	MinInterval time.Duration `yaml:"min_interval"`
}

type RSAConfig struct {
	KeyBits int `yaml:"key_bits"`
}

// DefaultsConfig holds the algorithm used when --algorithm is not given.
type DefaultsConfig struct {
	TextAlgorithm  string `yaml:"text_algorithm"`
	ImageAlgorithm string `yaml:"image_algorithm"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Breach: BreachConfig{
			Enabled:     true,
			Endpoint:    constants.DefaultBreachEndpoint,
			UserAgent:   constants.DefaultBreachUserAgent,
			Timeout:     constants.DefaultBreachTimeout,
			MinInterval: constants.BreachMinInterval,
		},
		RSA: RSAConfig{
			KeyBits: constants.DefaultRSAKeyBits,
		},
		Defaults: DefaultsConfig{
			TextAlgorithm:  constants.AlgorithmFernet,
			ImageAlgorithm: constants.AlgorithmAES,
		},
	}
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	var problems []string

	if c.RSA.KeyBits < constants.MinRSAKeyBits {
		problems = append(problems, fmt.Sprintf("rsa.key_bits must be at least %d", constants.MinRSAKeyBits))
	}
	if c.Breach.Enabled && c.Breach.Endpoint == "" {
		problems = append(problems, "breach.endpoint is required when breach checks are enabled")
	}
	if c.Breach.Timeout <= 0 {
		problems = append(problems, "breach.timeout must be positive")
	}
	if c.Breach.MinInterval < constants.BreachMinInterval {
		problems = append(problems, fmt.Sprintf("breach.min_interval must be at least %s", constants.BreachMinInterval))
	}
	if !knownAlgorithm(c.Defaults.TextAlgorithm) {
		problems = append(problems, fmt.Sprintf("defaults.text_algorithm %q is not supported", c.Defaults.TextAlgorithm))
	}
	if !knownAlgorithm(c.Defaults.ImageAlgorithm) || strings.EqualFold(c.Defaults.ImageAlgorithm, constants.AlgorithmCaesar) {
		problems = append(problems, fmt.Sprintf("defaults.image_algorithm %q is not supported", c.Defaults.ImageAlgorithm))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func knownAlgorithm(name string) bool {
	switch strings.ToLower(name) {
	case constants.AlgorithmAES, constants.AlgorithmChaCha20, "chacha", constants.AlgorithmFernet, constants.AlgorithmCaesar:
		return true
	}
	return false
}
