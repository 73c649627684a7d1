package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 15, cfg.OpenAI.TimeoutSec)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadConfigAppliesDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai:\n  model: gpt-4o\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 15, cfg.OpenAI.TimeoutSec, "unset keys fall back to defaults")
}

func TestSaveLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		Storage: StorageConfig{Path: "/tmp/tasks.db"},
		OpenAI: OpenAIConfig{
			Model:      "gpt-4o",
			BaseURL:    "http://localhost:9999/v1",
			TimeoutSec: 3,
		},
		Logging: LoggingConfig{Development: true},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
