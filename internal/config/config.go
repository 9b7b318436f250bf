package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the configuration file. An empty path uses the
// defaults. The OpenAI token is resolved from the environment afterwards,
// optionally seeded from the configured env file. A missing token is not an
// error here; commands that call the API reject it when the client is built.
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := LoadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}

	// Get OpenAI token from environment
	cfg.ResolveToken()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile copies KEY=VALUE pairs from path into the process environment.
// A missing file is not an error and existing variables are left untouched.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ResolveToken reads the OpenAI token from the configured environment
// variable unless one was already set. The token stays empty when the
// variable is unset.
func (c *Config) ResolveToken() {
	if c.OpenAI.Token != "" || c.OpenAI.TokenEnv == "" {
		return
	}
	c.OpenAI.Token = os.Getenv(c.OpenAI.TokenEnv)
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.OpenAI.BaseURL == "" {
		return fmt.Errorf("openai.base_url is required")
	}
	if c.OpenAI.TokenEnv == "" && c.OpenAI.Token == "" {
		return fmt.Errorf("openai.token_env is required")
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		return fmt.Errorf("openai.timeout_seconds must be positive")
	}

	if c.Usage.Enabled {
		if c.Usage.Redis.Address == "" {
			return fmt.Errorf("usage.redis.address is required when usage is enabled")
		}
		if c.Usage.RetentionDays <= 0 {
			return fmt.Errorf("usage.retention_days must be positive")
		}
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
