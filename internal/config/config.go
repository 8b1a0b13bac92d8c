// Package config provides application configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds all application configuration.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"./data/negotium.db"`

	// Inference credentials. At least one API key is required unless a
	// local inference endpoint is configured; the backend is selected
	// once at startup.
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	GroqAPIKey        string `env:"GROQ_API_KEY"`
	LocalInferenceURL string `env:"LOCAL_INFERENCE_URL"`
	LocalModel        string `env:"LOCAL_MODEL" envDefault:"phi-1_5"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.OpenAIAPIKey == "" && c.GroqAPIKey == "" && c.LocalInferenceURL == "" {
		return fmt.Errorf("one of OPENAI_API_KEY, GROQ_API_KEY or LOCAL_INFERENCE_URL must be set")
	}
	return nil
}
