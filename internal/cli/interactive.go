package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/tui"
)

// ErrNotInteractive is returned when the session is started without a terminal.
var ErrNotInteractive = errors.New("interactive mode needs a terminal; use 'footprint calculate -f <sheet>' instead")

// NewInteractiveCmd creates the "interactive" command: a terminal session
// that prompts for activities one at a time and keeps a running ledger.
// The final ledger is printed when the session ends.
func NewInteractiveCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"session"},
		Short:   "Build a footprint interactively",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, output)
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func runInteractive(cmd *cobra.Command, output string) error {
	ctx := cmd.Context()

	if tui.DetectOutputMode(false, false, true) != tui.OutputModeInteractive {
		return ErrNotInteractive
	}

	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	model := tui.NewSessionModel(ctx, reg, config.GetOutputPrecision())
	if _, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}

	l := model.Session().Ledger()
	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("operation", "interactive").
		Int("records", l.Len()).
		Float64("total_tco2e", l.GrandTotal()).
		Msg("interactive session finished")

	return renderLedger(cmd.OutOrStdout(), format, l, renderOptions(reg, ""))
}
