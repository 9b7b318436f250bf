package config

const (
	DefaultBaseURL  = "https://api.openai.com/v1"
	DefaultModel    = "gpt-3.5-turbo-16k"
	DefaultTokenEnv = "OPEN_AI_TOKEN"
	DefaultEnvFile  = ".env"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			BaseURL:        DefaultBaseURL,
			Model:          DefaultModel,
			TokenEnv:       DefaultTokenEnv,
			TimeoutSeconds: 120, // completions on long prompts can be slow
		},
		EnvFile: DefaultEnvFile,
		Usage: UsageConfig{
			Enabled:       false,
			RetentionDays: 90, // 3 months
			Redis: RedisConfig{
				Address:   "localhost:6379",
				DB:        0,
				KeyPrefix: "prompter:",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
