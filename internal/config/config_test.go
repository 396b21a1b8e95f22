package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diagnoser/internal/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.ShowCycleGraphs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Full)
}

func TestLoad_ParsesFileContents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "diagnose.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_cycle_graphs: true\nlog_level: debug\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ShowCycleGraphs)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_OptionsOverrideFileContents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "diagnose.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_cycle_graphs: true\n"), 0o644))

	cfg, err := config.Load(path, config.WithShowCycleGraphs(false, true))
	require.NoError(t, err)
	assert.False(t, cfg.ShowCycleGraphs)
}

func TestLoad_OptionIgnoredWhenNotSet(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("", config.WithShowCycleGraphs(true, false))
	require.NoError(t, err)
	assert.False(t, cfg.ShowCycleGraphs)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "diagnose.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_cycle_graphs: [unterminated\n"), 0o644))

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrMalformedConfig)
}

func TestLoad_RejectsUnrecognizedLogLevel(t *testing.T) {
	t.Parallel()

	_, err := config.Load("", config.WithLogLevel("verbose"))
	assert.ErrorIs(t, err, config.ErrMalformedConfig)
}
