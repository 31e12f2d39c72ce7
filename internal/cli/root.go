package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the footprint CLI. It loads
// configuration (global file, project overlay, environment), sets up
// logging and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
	)

	cmd := &cobra.Command{
		Use:     "footprint",
		Short:   "Corporate carbon footprint calculator",
		Long:    "footprint: Calculate scope 1, 2 and 3 greenhouse gas emissions from activity data",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wd, _ := os.Getwd()
			resolved := config.ResolveProjectDir(cmd.Context(), projectDir, wd)
			config.SetResolvedProjectDir(resolved)
			config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), resolved))

			result := setupLogging(cmd)
			logResult = &result

			if loadErr := config.GetGlobalConfig().LoadError(); loadErr != nil {
				logger.Warn().Ctx(cmd.Context()).Err(loadErr).Msg("config file unreadable, using defaults")
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("factors", "", "emission factor file (overrides factors.file in config)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding .footprint/config.yaml (default: discovered from the working directory)")

	cmd.AddCommand(
		NewCalculateCmd(),
		NewCombustionCmd(), NewElectricityCmd(), NewProcurementCmd(), NewTravelCmd(),
		NewFactorsCmd(),
		NewInteractiveCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Calculate a footprint from an activity sheet
  footprint calculate -f activities.yaml

  # Scope 1: burning 1,000 m³ of natural gas
  footprint combustion --fuel natural_gas --quantity 1000

  # Scope 2: compare location- and market-based figures
  footprint electricity --country DE --kwh 10000 --renewable-kwh 4000 --method both

  # Scope 3: spend-based purchased goods with a supplier factor
  footprint procurement --spend 50000 --factor 0.45

  # List available emission factors
  footprint factors --domain electricity

  # Export results as CSV
  footprint calculate -f activities.yaml --output csv > footprint.csv

  # Build a footprint interactively
  footprint interactive`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
