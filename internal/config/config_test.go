package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaceholder(t *testing.T) {
	placeholders := []string{
		"",
		"   ",
		"changeme",
		"CHANGEME",
		"placeholder",
		"your-api-key-here",
		"your_key",
		"sk-xxxxxxxx",
		"todo",
	}
	for _, v := range placeholders {
		assert.True(t, IsPlaceholder(v), "%q should be a placeholder", v)
	}

	real := []string{"sk-proj-abc123def", "anthropic-key-1", "x7f2k9"}
	for _, v := range real {
		assert.False(t, IsPlaceholder(v), "%q should not be a placeholder", v)
	}
}

func TestResolveProviderNilWhenUnconfigured(t *testing.T) {
	var cfg Config
	cfg.AI.Provider = "openai"
	cfg.AI.APIKey = "your-api-key-here"
	assert.Nil(t, cfg.ResolveProvider())

	cfg.AI.APIKey = "sk-proj-abc123def"
	pc := cfg.ResolveProvider()
	require.NotNil(t, pc)
	assert.Equal(t, "openai", pc.Provider)
	assert.Equal(t, "sk-proj-abc123def", pc.APIKey)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9090
ai:
  provider: openai
  apiKey: from-file
  model: gpt-4o
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("AI_API_KEY", "from-env")
	t.Setenv("AI_MODEL", "claude-3-5-sonnet-20241022")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.AI.Model)
}

func TestProviderSpecificEnvKey(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-env-key")
	t.Setenv("AI_PROVIDER", "anthropic")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "anthropic-env-key", cfg.AI.APIKey)
}
