package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Pipeline.MaxArticlesPerRun)
	assert.Equal(t, 3, cfg.Pipeline.MaxRetries)
	assert.InDelta(t, 10.0, cfg.Pipeline.ReadabilityCeiling, 1e-9)
	assert.Equal(t, 4800, cfg.Translation.ChunkSize)
	assert.Equal(t, []string{"hi", "ta"}, cfg.Pipeline.TranslationLanguages)
	assert.Len(t, cfg.Feeds, 3)
}

func TestMergeConfigKeepsDefaultsForUnsetFields(t *testing.T) {
	t.Parallel()

	override, err := Parse([]byte(`
pipeline:
  maxArticlesPerRun: 5
  readabilityCeiling: 8
translation:
  backoff: 10ms
feeds:
  - name: example
    url: https://example.org/rss.xml
`))
	require.NoError(t, err)

	merged := mergeConfig(Default(), override)
	assert.Equal(t, 5, merged.Pipeline.MaxArticlesPerRun)
	assert.InDelta(t, 8.0, merged.Pipeline.ReadabilityCeiling, 1e-9)
	assert.Equal(t, 3, merged.Pipeline.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, merged.Translation.Backoff)
	assert.Equal(t, 3, merged.Translation.MaxAttempts)
	require.Len(t, merged.Feeds, 1)
	assert.Equal(t, "https://example.org/rss.xml", merged.Feeds[0].URL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Pipeline.MinFactConfidence = 150
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Generator.Provider = "unknown"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Feeds = []FeedConfig{{Name: "broken", URL: "not a url"}}
	assert.Error(t, cfg.Validate())
}

func TestLoadAppliesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler:\n  interval: 5m\n"), 0o600))

	t.Setenv(ConfigPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://u:p@db/news")
	t.Setenv(geminiAPIKeyEnv, "key")
	t.Setenv(chatAPIKeyEnv, "")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, "postgres://u:p@db/news", cfg.Database.DSN)
	assert.Equal(t, "gemini", cfg.Generator.Provider)
	assert.Equal(t, "key", cfg.Generator.APIKey)
}
