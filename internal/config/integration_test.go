package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/logging"
)

func TestGlobalConfig(t *testing.T) {
	t.Setenv("FOOTPRINT_HOME", t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)

	// Subsequent calls return the same instance.
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())
}

func TestSetGlobalConfig(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := Defaults()
	cfg.Output.DefaultFormat = "json"
	cfg.Output.Precision = 4
	cfg.Factors.File = "factors.yaml"
	SetGlobalConfig(cfg)

	assert.Same(t, cfg, GetGlobalConfig())
	assert.Equal(t, "json", GetDefaultOutputFormat())
	assert.Equal(t, 4, GetOutputPrecision())
	assert.Equal(t, "factors.yaml", GetFactorsFile())
}

func TestGetConfigDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("FOOTPRINT_HOME", custom)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, custom, dir)

	t.Setenv("FOOTPRINT_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err = GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".footprint"), dir)
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "fp")
	t.Setenv("FOOTPRINT_HOME", home)

	require.NoError(t, EnsureConfigDir())

	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := Defaults()
	SetGlobalConfig(cfg)
	require.NoError(t, EnsureLogDir(), "no log file configured is a no-op")

	logDir := filepath.Join(t.TempDir(), "logs", "deep")
	cfg.Logging.File = filepath.Join(logDir, "footprint.log")
	require.NoError(t, EnsureLogDir())

	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestToLoggingConfig(t *testing.T) {
	stderr := LoggingConfig{Level: "debug", Format: "json"}.ToLoggingConfig()
	assert.Equal(t, logging.Config{Level: "debug", Format: "json", Output: logging.OutputStderr}, stderr)

	file := LoggingConfig{Level: "info", Format: "console", File: "/tmp/fp.log"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, file.Output)
	assert.Equal(t, "/tmp/fp.log", file.File)
}
