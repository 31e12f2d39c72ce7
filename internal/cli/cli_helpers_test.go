package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/internal/config"
)

// setupCLITest isolates the global config and environment. It returns the
// FOOTPRINT_HOME directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("FOOTPRINT_HOME", home)
	t.Setenv("FOOTPRINT_PROJECT_DIR", "")
	t.Setenv("FOOTPRINT_LOG_LEVEL", "error")
	t.Setenv("FOOTPRINT_OUTPUT_FORMAT", "")
	t.Setenv("FOOTPRINT_OUTPUT_PRECISION", "")
	t.Setenv("FOOTPRINT_FACTORS_FILE", "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// executeCmd runs the root command with args and returns stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
