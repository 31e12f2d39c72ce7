package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/logging"
)

// ErrNoActivities is returned when a sheet yields no emission records.
var ErrNoActivities = errors.New("no activity could be calculated")

type calculateParams struct {
	sheetPath string
	output    string
	strict    bool
}

// NewCalculateCmd creates the "calculate" command, which builds a footprint
// from an activity sheet.
//
// Invalid activities are reported as warnings and skipped. With --strict any
// invalid activity makes the command exit with status 2 after rendering the
// activities that did succeed.
func NewCalculateCmd() *cobra.Command {
	var params calculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a carbon footprint from an activity sheet",
		Long: `Calculate scope 1, 2 and 3 emissions from a YAML or JSON activity sheet.

Each entry names its kind (combustion, electricity, procurement, travel) and
the fields that kind needs. Electricity entries must choose a scope 2 method,
either per entry or with the sheet-level electricity_method.`,
		Example: calculateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.sheetPath, "file", "f", "", "activity sheet (YAML or JSON)")
	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"output format: table, json, ndjson or csv (default from config)")
	cmd.Flags().BoolVar(&params.strict, "strict", false, "exit with status 2 if any activity is invalid")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

const calculateExample = `  # Table with scope summary
  footprint calculate -f activities.yaml

  # JSON report for another tool
  footprint calculate -f activities.yaml -o json

  # Fail the build when the sheet has bad entries
  footprint calculate -f activities.yaml --strict`

func executeCalculate(cmd *cobra.Command, params calculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).Str("operation", "calculate").Str("sheet", params.sheetPath).Msg("starting calculation")

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	sheet, err := engine.LoadSheet(params.sheetPath)
	if err != nil {
		return err
	}

	session := engine.NewSession(reg)
	failed := session.AddSheet(ctx, sheet)
	reportActivityErrors(ctx, cmd, failed)

	log.Info().Ctx(ctx).
		Str("operation", "calculate").
		Int("recorded", session.Ledger().Len()).
		Int("skipped", len(failed)).
		Float64("total_tco2e", session.Ledger().GrandTotal()).
		Msg("calculation complete")

	total := len(sheet.Activities) + len(sheet.Invalid)
	if total > 0 && session.Ledger().Len() == 0 {
		return &ExitError{
			Code: ExitCodeError,
			Err:  fmt.Errorf("%w: %w", ErrNoActivities, engine.JoinActivityErrors(failed)),
		}
	}

	opts := renderOptions(reg, sheetTitle(sheet, params.sheetPath))
	if renderErr := renderLedger(cmd.OutOrStdout(), format, session.Ledger(), opts); renderErr != nil {
		return fmt.Errorf("rendering output: %w", renderErr)
	}

	if params.strict && len(failed) > 0 {
		return &ExitError{
			Code: ExitCodePartial,
			Err:  fmt.Errorf("%d of %d activities invalid", len(failed), total),
		}
	}
	return nil
}

func sheetTitle(sheet *engine.Sheet, path string) string {
	if sheet.Name != "" {
		return sheet.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
