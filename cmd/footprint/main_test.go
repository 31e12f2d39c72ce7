package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "footprint", root.Use)
	})
}

func TestRun(t *testing.T) {
	t.Setenv("FOOTPRINT_HOME", t.TempDir())
	t.Setenv("FOOTPRINT_PROJECT_DIR", "")
	t.Cleanup(config.ResetGlobalConfigForTest)

	require.NoError(t, run(context.Background(), []string{"factors", "--domain", "travel", "-o", "json"}))

	err := run(context.Background(), []string{"combustion", "--fuel", "coal", "--quantity", "1"})
	require.Error(t, err)
	assert.Equal(t, 1, extractExitCode(err))
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{name: "exit error", err: &cli.ExitError{Code: 2, Err: errors.New("partial")}, want: 2},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("outer: %w", &cli.ExitError{Code: 3}),
			want: 3,
		},
		{
			name: "joined exit error",
			err:  errors.Join(errors.New("outer"), &cli.ExitError{Code: 2}),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
