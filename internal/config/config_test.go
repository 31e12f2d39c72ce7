package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/config"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("FOOTPRINT_HOME", home)
	for _, key := range []string{
		"FOOTPRINT_OUTPUT_FORMAT", "FOOTPRINT_OUTPUT_PRECISION",
		"FOOTPRINT_LOG_LEVEL", "FOOTPRINT_LOG_FORMAT", "FOOTPRINT_FACTORS_FILE",
		"FOOTPRINT_PROJECT_DIR",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestNew_Defaults(t *testing.T) {
	home := isolate(t)

	cfg := config.New()

	require.NoError(t, cfg.LoadError())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Factors.File)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	require.NoError(t, cfg.Validate())
}

func TestNew_ReadsConfigFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
output:
  default_format: csv
  precision: 4
factors:
  file: /etc/footprint/factors.yaml
`), 0o600))

	cfg := config.New()

	require.NoError(t, cfg.LoadError())
	assert.Equal(t, "csv", cfg.Output.DefaultFormat)
	assert.Equal(t, 4, cfg.Output.Precision)
	assert.Equal(t, "/etc/footprint/factors.yaml", cfg.Factors.File)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestNew_BrokenFileKeepsDefaults(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("output: [unclosed"), 0o600))

	cfg := config.New()

	require.Error(t, cfg.LoadError())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestNew_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FOOTPRINT_OUTPUT_FORMAT", "json")
	t.Setenv("FOOTPRINT_OUTPUT_PRECISION", "5")
	t.Setenv("FOOTPRINT_LOG_LEVEL", "debug")
	t.Setenv("FOOTPRINT_FACTORS_FILE", "custom.yaml")

	cfg := config.New()

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, 5, cfg.Output.Precision)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "custom.yaml", cfg.Factors.File)
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Defaults()
	cfg.SetConfigPath(path)
	cfg.Output.DefaultFormat = "ndjson"
	cfg.Logging.File = "/var/log/footprint.log"
	require.NoError(t, cfg.Save())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ndjson", loaded.Output.DefaultFormat)
	assert.Equal(t, "/var/log/footprint.log", loaded.Logging.File)
	assert.Equal(t, path, loaded.ConfigPath())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_NoPath(t *testing.T) {
	assert.Error(t, config.Defaults().Save())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "csv output", mutate: func(c *config.Config) { c.Output.DefaultFormat = "csv" }},
		{
			name:    "unknown format",
			mutate:  func(c *config.Config) { c.Output.DefaultFormat = "xml" },
			wantErr: config.ErrInvalidOutputFormat,
		},
		{
			name:    "negative precision",
			mutate:  func(c *config.Config) { c.Output.Precision = -1 },
			wantErr: config.ErrInvalidPrecision,
		},
		{
			name:    "precision too large",
			mutate:  func(c *config.Config) { c.Output.Precision = 12 },
			wantErr: config.ErrInvalidPrecision,
		},
		{
			name:    "bad level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: config.ErrInvalidLogLevel,
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "text" },
			wantErr: config.ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := config.Defaults()
	cfg.Output.DefaultFormat = "xml"
	cfg.Logging.Format = "text"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidOutputFormat)
	assert.ErrorIs(t, err, config.ErrInvalidLogFormat)
}

func TestGetSet(t *testing.T) {
	cfg := config.Defaults()

	for _, key := range config.Keys() {
		_, err := cfg.Get(key)
		require.NoError(t, err, key)
	}

	require.NoError(t, cfg.Set("output.precision", "3"))
	got, err := cfg.Get("output.precision")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	require.NoError(t, cfg.Set("factors.file", "f.yaml"))
	assert.Equal(t, "f.yaml", cfg.Factors.File)

	assert.ErrorIs(t, cfg.Set("output.precision", "many"), config.ErrInvalidPrecision)
	assert.ErrorIs(t, cfg.Set("plugins.aws", "x"), config.ErrUnknownKey)
	_, err = cfg.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}
