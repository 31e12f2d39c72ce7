package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	home := setupCLITest(t)

	stdout, _, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized at")

	path := filepath.Join(home, "config.yaml")
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.DefaultFormat)

	_, _, err = executeCmd(t, "config", "init")
	require.ErrorIs(t, err, cli.ErrConfigExists)

	_, _, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	home := setupCLITest(t)
	projectRoot := t.TempDir()

	stdout, _, err := executeCmd(t, "--project-dir", projectRoot, "config", "init")
	require.NoError(t, err)

	projectConfig := filepath.Join(projectRoot, config.ProjectDirName, "config.yaml")
	assert.Contains(t, stdout, projectConfig)
	assert.FileExists(t, projectConfig)
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	_, _, err = executeCmd(t, "--project-dir", projectRoot, "config", "init", "--global")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}

func TestConfigSetGetList(t *testing.T) {
	home := setupCLITest(t)

	_, _, err := executeCmd(t, "config", "set", "output.precision", "4")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	stdout, _, err := executeCmd(t, "config", "get", "output.precision")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	stdout, _, err = executeCmd(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, stdout, key+" = ")
	}
	assert.Contains(t, stdout, "output.precision = 4")

	// Precision flows through to rendering.
	stdout, _, err = executeCmd(t, "travel", "--mode", "rail", "--distance", "1000")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total carbon footprint: 0.0350 tCO2e")
}

func TestConfigSet_Rejects(t *testing.T) {
	home := setupCLITest(t)

	_, _, err := executeCmd(t, "config", "set", "output.default_format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)

	_, _, err = executeCmd(t, "config", "set", "plugins.aws", "x")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, _, err = executeCmd(t, "config", "get", "nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, statErr := os.Stat(filepath.Join(home, "config.yaml"))
	assert.True(t, os.IsNotExist(statErr), "rejected values must not be saved")
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	stdout, _, err := executeCmd(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
	assert.Contains(t, stdout, "Emission factors: EU baseline (version 2024.1.0)")

	writeFile(t, home, "config.yaml", "output:\n  default_format: xml\n  precision: 2\n")
	_, _, err = executeCmd(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)
}

func TestConfigValidate_BrokenFactorsFile(t *testing.T) {
	setupCLITest(t)
	t.Setenv("FOOTPRINT_FACTORS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, _, err := executeCmd(t, "config", "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
