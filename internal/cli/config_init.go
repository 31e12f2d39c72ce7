package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
)

// ErrConfigExists is returned by config init when the file is already there.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command. Inside a project with a
// .footprint directory (and without --global) it writes the project config;
// otherwise it writes ~/.footprint/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var force, global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When a project .footprint directory is found (or named with --project-dir),
the file is written to $PROJECT/.footprint/config.yaml. Use --global to
write ~/.footprint/config.yaml instead.`,
		Example: `  # Create configuration
  footprint config init

  # Create global configuration even inside a project
  footprint config init --global

  # Overwrite an existing file
  footprint config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := targetConfigPath(global)
			if err != nil {
				return err
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "use the global configuration even inside a project")

	return cmd
}

// targetConfigPath is the file config init and config set write to.
func targetConfigPath(global bool) (string, error) {
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" && !global {
		return filepath.Join(projectDir, "config.yaml"), nil
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func initConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Defaults()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
