package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/logging"
)

// ErrMissingProcurementFactor is returned when neither a category nor a
// supplier factor is given.
var ErrMissingProcurementFactor = errors.New("procurement needs --category or --factor")

// methodBoth asks the electricity command for dual disclosure.
const methodBoth = "both"

// NewCombustionCmd creates the "combustion" command for a single scope 1 fuel activity.
func NewCombustionCmd() *cobra.Command {
	var (
		act    = engine.Activity{Kind: engine.KindCombustion}
		output string
	)

	cmd := &cobra.Command{
		Use:   "combustion",
		Short: "Scope 1 emissions from burning fuel",
		Example: `  footprint combustion --fuel natural_gas --quantity 1000
  footprint combustion --fuel diesel --quantity 500 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActivity(cmd, act, output)
		},
	}

	cmd.Flags().StringVar(&act.Fuel, "fuel", "", "fuel type (see 'footprint factors --domain fuel')")
	cmd.Flags().Float64Var(&act.Quantity, "quantity", 0, "amount burned, in the fuel's unit")
	addOutputFlag(cmd, &output)
	_ = cmd.MarkFlagRequired("fuel")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

// NewElectricityCmd creates the "electricity" command for purchased
// electricity. The scope 2 method is mandatory; "both" prints location- and
// market-based figures side by side without adding either to a total.
func NewElectricityCmd() *cobra.Command {
	var (
		act    = engine.Activity{Kind: engine.KindElectricity}
		output string
	)

	cmd := &cobra.Command{
		Use:   "electricity",
		Short: "Scope 2 emissions from purchased electricity",
		Example: `  footprint electricity --country DE --kwh 10000 --method location
  footprint electricity --country EU --kwh 10000 --renewable-kwh 4000 --method market
  footprint electricity --country EU --kwh 10000 --renewable-kwh 4000 --method both`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.EqualFold(strings.TrimSpace(act.Method), methodBoth) {
				return executeDualElectricity(cmd, act, output)
			}
			if _, err := greenops.ParseElectricityMethod(act.Method); err != nil {
				return fmt.Errorf("--method: %w (or %s)", err, methodBoth)
			}
			return runActivity(cmd, act, output)
		},
	}

	cmd.Flags().StringVar(&act.Country, "country", "", "grid region code, e.g. DE or EU")
	cmd.Flags().Float64Var(&act.ElectricityKWh, "kwh", 0, "electricity consumed in kWh")
	cmd.Flags().Float64Var(&act.RenewableKWh, "renewable-kwh", 0,
		"kWh covered by renewable contracts (market-based only)")
	cmd.Flags().StringVar(&act.Method, "method", "", "scope 2 method: location, market or both")
	addOutputFlag(cmd, &output)
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("kwh")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func executeDualElectricity(cmd *cobra.Command, act engine.Activity, output string) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	dual, err := greenops.CalculateDualElectricity(reg, act.ElectricityKWh, act.RenewableKWh, factors.Country(act.Country))
	if err != nil {
		return fmt.Errorf("electricity: %w", err)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("operation", "electricity_dual").
		Float64("location_tco2e", dual.Location.EmissionsTonnes).
		Float64("market_tco2e", dual.Market.EmissionsTonnes).
		Msg("dual scope 2 calculated")

	switch format {
	case engine.FormatJSON, engine.FormatNDJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		if format == engine.FormatJSON {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(dual)
	case engine.FormatTable:
		return engine.RenderDual(cmd.OutOrStdout(), dual, config.GetOutputPrecision())
	default:
		return fmt.Errorf("%w: %q with --method both", engine.ErrUnsupportedFormat, format)
	}
}

// NewProcurementCmd creates the "procurement" command for spend-based
// purchased goods. --factor overrides the category factor.
func NewProcurementCmd() *cobra.Command {
	var (
		act      = engine.Activity{Kind: engine.KindProcurement}
		override float64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "procurement",
		Short: "Scope 3 emissions from purchased goods (spend-based)",
		Example: `  footprint procurement --category it_equipment --spend 50000
  footprint procurement --spend 50000 --factor 0.45`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("factor") {
				act.Factor = &override
			}
			if act.Category == "" && act.Factor == nil {
				return ErrMissingProcurementFactor
			}
			return runActivity(cmd, act, output)
		},
	}

	cmd.Flags().StringVar(&act.Category, "category", "", "procurement category")
	cmd.Flags().Float64Var(&act.SpendEUR, "spend", 0, "spend in EUR")
	cmd.Flags().Float64Var(&override, "factor", 0, "supplier factor in kg CO2e per EUR")
	addOutputFlag(cmd, &output)
	_ = cmd.MarkFlagRequired("spend")

	return cmd
}

// NewTravelCmd creates the "travel" command for business travel.
func NewTravelCmd() *cobra.Command {
	var (
		act    = engine.Activity{Kind: engine.KindTravel}
		output string
	)

	cmd := &cobra.Command{
		Use:     "travel",
		Short:   "Scope 3 emissions from business travel",
		Example: `  footprint travel --mode rail --distance 1200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActivity(cmd, act, output)
		},
	}

	cmd.Flags().StringVar(&act.Mode, "mode", "", "travel mode, e.g. flight_short_haul or rail")
	cmd.Flags().Float64Var(&act.DistanceKM, "distance", 0, "distance in km")
	addOutputFlag(cmd, &output)
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "", "output format: table, json, ndjson or csv (default from config)")
}
