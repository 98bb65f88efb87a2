package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Engine)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data/lexiglow.db", cfg.SQLite.Path)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEXISTORE_ENGINE", "mongodb")
	t.Setenv("LEXISTORE_MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("LEXISTORE_MONGODB_DATABASE", "lexiglow_prod")
	t.Setenv("LEXISTORE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb", cfg.Engine)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.MongoDB.URI)
	assert.Equal(t, "lexiglow_prod", cfg.MongoDB.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	t.Setenv("LEXISTORE_ENGINE", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidateEngineSections(t *testing.T) {
	cfg := Config{Engine: "sqlite", LogLevel: "info"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite.path")

	cfg = Config{Engine: "mongodb", LogLevel: "info", MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017"}}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb.uri and mongodb.database")

	cfg = Config{
		Engine: "mongodb", LogLevel: "info",
		MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017", Database: "lexiglow"},
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("LEXISTORE_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}
