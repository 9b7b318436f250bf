package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	OpenAI  OpenAIConfig  `yaml:"openai"`
	EnvFile string        `yaml:"env_file"`
	Usage   UsageConfig   `yaml:"usage"`
	Logging LoggingConfig `yaml:"logging"`
}

// OpenAIConfig holds the completions API settings
type OpenAIConfig struct {
	Token          string `yaml:"-"` // From environment, not YAML
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TokenEnv       string `yaml:"token_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RequestTimeout returns the HTTP timeout as a Duration
func (o *OpenAIConfig) RequestTimeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// UsageConfig holds the usage ledger settings
type UsageConfig struct {
	Enabled       bool        `yaml:"enabled"`
	RetentionDays int         `yaml:"retention_days"`
	Redis         RedisConfig `yaml:"redis"`
}

// Retention returns how long a day's usage is kept
func (u *UsageConfig) Retention() time.Duration {
	return time.Duration(u.RetentionDays) * 24 * time.Hour
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address     string `yaml:"address"`
	PasswordEnv string `yaml:"password_env"`
	DB          int    `yaml:"db"`
	KeyPrefix   string `yaml:"key_prefix"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}
