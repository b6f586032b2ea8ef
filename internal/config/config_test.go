package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rudra-050/graph-vision-mcp/internal/detection"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph-vision.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16, cfg.Analysis.MaxHamiltonianNodes)
	assert.False(t, cfg.OCR.Enabled)
	assert.False(t, cfg.Debug())
}

func TestDefaultConfig_MatchesDetectionDefaults(t *testing.T) {
	assert.Equal(t, detection.DefaultConfig(), DefaultConfig().Detection())
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `
hough:
  max_radius: 40
  snap_distance: 0
binarize:
  method: adaptive
classifier:
  polygon_edges: true
`)

	cfg, got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	assert.Equal(t, 40, cfg.Hough.MaxRadius)
	assert.Zero(t, cfg.Hough.SnapDistance)
	assert.Equal(t, 5, cfg.Hough.MinRadius, "unset keys keep defaults")
	assert.Equal(t, "adaptive", cfg.Binarize.Method)

	d := cfg.Detection()
	assert.Equal(t, 40, d.Hough.MaxRadius)
	assert.True(t, d.Classifier.PolygonEdges)
	assert.Equal(t, 50, d.Hough.CannyLow)
}

func TestLoadFromPath_Errors(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, _, err = LoadFromPath(writeConfig(t, "hough: [1, 2"))
	assert.ErrorContains(t, err, "parse config")

	_, _, err = LoadFromPath(writeConfig(t, "hough:\n  min_radius: 20\n  max_radius: 10\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"inverted radius range", func(c *Config) { c.Hough.MinRadius, c.Hough.MaxRadius = 20, 10 }, "hough.max_radius"},
		{"zero min radius", func(c *Config) { c.Hough.MinRadius = 0 }, "hough.min_radius"},
		{"inverted node area", func(c *Config) { c.Classifier.NodeMaxArea = 10 }, "classifier.node_max_area"},
		{"non-positive node area", func(c *Config) { c.Classifier.NodeMinArea = 0 }, "classifier.node_min_area"},
		{"coverage above one", func(c *Config) { c.Feature.MinCoverage = 1.5 }, "feature.min_coverage"},
		{"unknown binarize method", func(c *Config) { c.Binarize.Method = "sauvola" }, "binarize.method"},
		{"inverted canny", func(c *Config) { c.Preprocess.CannyHigh = 10 }, "preprocess.canny_high"},
		{"negative guard", func(c *Config) { c.Analysis.MaxHamiltonianNodes = -1 }, "analysis.max_hamiltonian_nodes"},
		{"ocr without language", func(c *Config) { c.OCR.Enabled, c.OCR.Language = true, "" }, "ocr.language"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_DisabledOCRNeedsNoLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Language = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Priority(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(EnvLogLevel, "")

	t.Run("defaults without a file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		cfg, path, err := Load()
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("working directory file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		require.NoError(t, os.WriteFile(ConfigFileName, []byte("analysis:\n  max_hamiltonian_nodes: 8\n"), 0o644))
		t.Cleanup(func() { os.Remove(ConfigFileName) })

		cfg, path, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(path))
		assert.Equal(t, 8, cfg.Analysis.MaxHamiltonianNodes)
	})

	t.Run("environment path wins", func(t *testing.T) {
		require.NoError(t, os.WriteFile(ConfigFileName, []byte("analysis:\n  max_hamiltonian_nodes: 8\n"), 0o644))
		t.Cleanup(func() { os.Remove(ConfigFileName) })
		explicit := writeConfig(t, "analysis:\n  max_hamiltonian_nodes: 4\n")
		t.Setenv(EnvConfigPath, explicit)

		cfg, path, err := Load()
		require.NoError(t, err)
		assert.Equal(t, explicit, path)
		assert.Equal(t, 4, cfg.Analysis.MaxHamiltonianNodes)
	})

	t.Run("missing environment path falls back", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))
		_, path, err := Load()
		require.NoError(t, err)
		assert.Empty(t, path)
	})
}

func TestLoad_LogLevelFromEnvironment(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, "log_level: info\n"))
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug())
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, _, err := LoadFromPath(filepath.Join("..", "..", "graph-vision.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
