// Package config loads and validates the persistence layer's
// configuration from environment variables and an optional config file.
package config

// Config holds all persistence configuration. Exactly one engine is
// active at a time; both sections may be populated, but only the
// selected engine's section is validated for completeness.
type Config struct {
	// Engine selects the active storage engine.
	Engine   string         `mapstructure:"engine"    validate:"required,oneof=sqlite mongodb"`
	LogLevel string         `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
}

// SQLiteConfig configures the relational engine: a single-node
// database file.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// MongoDBConfig configures the document engine.
type MongoDBConfig struct {
	URI      string `mapstructure:"uri"      validate:"omitempty,uri"`
	Database string `mapstructure:"database"`
}
