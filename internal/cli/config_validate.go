package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/factors"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (global file, project overlay and
FOOTPRINT_* environment variables).

When factors.file is set, the factor file is loaded and checked too: every
fuel, grid region, procurement category and travel mode must have a factor.`,
		Example: `  # Validate current configuration
  footprint config validate

  # Validate and show detailed information
  footprint config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.LoadError(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	reg := factors.Default()
	if cfg.Factors.File != "" {
		loaded, err := factors.Load(cfg.Factors.File)
		if err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		reg = loaded
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		cmd.Println()
		cmd.Println("Configuration details:")
		cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
		if dir := config.GetResolvedProjectDir(); dir != "" {
			cmd.Printf("  Project directory: %s\n", dir)
		}
		cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
		cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
		cmd.Printf("  Emission factors: %s (version %s)\n", reg.Name(), reg.Version())
	}

	return nil
}
