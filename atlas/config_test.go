package atlas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "AtlasEngineUnified.csv", cfg.Reference.Path)
	assert.Equal(t, "PartnerOverrides.csv", cfg.Reference.PartnerPath)
	assert.Equal(t, 256, cfg.Embedder.MaxSeqLen)
	assert.Equal(t, 3, cfg.Matcher.TopK)
	assert.Equal(t, 1, cfg.Matcher.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultBatchFileName, cfg.UI.ExportName)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	yml := "reference:\n  path: /data/ref.xlsx\nmatcher:\n  top_k: 5\nui:\n  naics_mode: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("ATLAS_MATCHER_WORKERS", "4")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "/data/ref.xlsx", cfg.Reference.Path)
	assert.Equal(t, 5, cfg.Matcher.TopK)
	assert.Equal(t, 4, cfg.Matcher.Workers)
	assert.True(t, cfg.UI.NAICSMode)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Config{
		Reference: ReferenceConfig{Path: "ref.csv"},
		UI:        UIConfig{NAICSMode: true, BatchColumn: "description"},
	}

	require.NoError(t, SaveConfig(path, cfg))
	got, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "ref.csv", got.Reference.Path)
	assert.True(t, got.UI.NAICSMode)
	assert.Equal(t, "description", got.UI.BatchColumn)
	assert.Equal(t, 3, got.Matcher.TopK)
}

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = InitLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
