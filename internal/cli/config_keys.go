package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
)

// NewConfigGetCmd prints one effective configuration value.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print a configuration value",
		Example: `  footprint config get output.precision`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigSetCmd changes one value in the configuration file and saves it.
// The new value must leave the configuration valid.
func NewConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  footprint config set output.default_format json
  footprint config set factors.file ./factors/2025.yaml --global`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := targetConfigPath(global)
			if err != nil {
				return err
			}

			cfg, err := config.LoadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				cfg = config.Defaults()
				cfg.SetConfigPath(path)
			} else if err != nil {
				return err
			}

			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("refusing to save invalid configuration: %w", err)
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("%s = %s (%s)\n", args[0], args[1], path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "edit the global configuration even inside a project")
	return cmd
}

// NewConfigListCmd prints every effective configuration value.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List effective configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			for _, key := range config.Keys() {
				v, err := cfg.Get(key)
				if err != nil {
					return err
				}
				cmd.Printf("%s = %s\n", key, v)
			}
			return nil
		},
	}
}
