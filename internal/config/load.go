package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (LEXISTORE_
// prefix, e.g. LEXISTORE_ENGINE, LEXISTORE_SQLITE_PATH) and an optional
// lexistore.yaml in the working directory. Environment variables take
// precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("engine", "sqlite")
	v.SetDefault("log_level", "info")
	v.SetDefault("sqlite.path", "data/lexiglow.db")
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "lexiglow")

	v.SetConfigName("lexistore")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEXISTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; env vars and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration, including the engine-specific
// section of the selected engine.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Engine {
	case "sqlite":
		if c.SQLite.Path == "" {
			return fmt.Errorf("invalid config: sqlite.path is required when engine is sqlite")
		}
	case "mongodb":
		if c.MongoDB.URI == "" || c.MongoDB.Database == "" {
			return fmt.Errorf("invalid config: mongodb.uri and mongodb.database are required when engine is mongodb")
		}
	}
	return nil
}
