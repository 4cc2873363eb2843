package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, 20, cfg.Search.ResultCount)
	assert.Equal(t, 2000, cfg.Scrape.DelayMs)
	assert.Equal(t, 15, cfg.Scrape.TimeoutSecs)
	assert.Equal(t, "./output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
search:
  serpapi_key: file-key
  max_results: 10
scrape:
  delay_ms: 500
output:
  dir: /tmp/research-out
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Search.SerpAPIKey)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, 500, cfg.Scrape.DelayMs)
	assert.Equal(t, "/tmp/research-out", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, 20, cfg.Search.ResultCount)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RESEARCH_SEARCH_SERPAPI_KEY", "env-key")
	t.Setenv("RESEARCH_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Search.SerpAPIKey)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_OK(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
