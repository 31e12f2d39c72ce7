package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/ledger"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/tui"
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exit codes.
const (
	ExitCodeError   = 1
	ExitCodePartial = 2
)

// loadRegistry returns the factor registry named by --factors, then
// factors.file from config, then the built-in registry.
func loadRegistry(cmd *cobra.Command) (*factors.Registry, error) {
	log := logging.FromContext(cmd.Context())

	path, _ := cmd.Flags().GetString("factors")
	if path == "" {
		path = config.GetFactorsFile()
	}
	if path == "" {
		reg := factors.Default()
		log.Debug().Str("registry", reg.Name()).Str("version", reg.Version()).Msg("using built-in emission factors")
		return reg, nil
	}

	reg, err := factors.Load(path)
	if err != nil {
		log.Error().Err(err).Str("factors_file", path).Msg("failed to load emission factors")
		return nil, fmt.Errorf("loading emission factors: %w", err)
	}
	log.Debug().
		Str("factors_file", path).
		Str("registry", reg.Name()).
		Str("version", reg.Version()).
		Msg("emission factors loaded")
	return reg, nil
}

// resolveOutputFormat returns flagValue, or the configured default when it
// is empty, and rejects unknown formats.
func resolveOutputFormat(flagValue string) (string, error) {
	format := flagValue
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if !config.IsValidOutputFormat(format) {
		return "", fmt.Errorf("%w: %q", engine.ErrUnsupportedFormat, format)
	}
	return format, nil
}

func renderOptions(reg *factors.Registry, title string) engine.RenderOptions {
	return engine.RenderOptions{
		Precision:       config.GetOutputPrecision(),
		Title:           title,
		RegistryName:    reg.Name(),
		RegistryVersion: reg.Version(),
	}
}

// renderLedger writes l in format. On a colour terminal the table format
// ends with the styled summary box instead of the plain summary.
func renderLedger(w io.Writer, format string, l *ledger.Ledger, opts engine.RenderOptions) error {
	if format != engine.FormatTable || l.Len() == 0 {
		return engine.Render(w, format, l, opts)
	}

	if tui.DetectOutputMode(false, false, false) != tui.OutputModeStyled {
		return engine.Render(w, format, l, opts)
	}

	if err := engine.RenderTable(w, l, opts); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", tui.RenderLedgerSummary(l, 0, opts.Precision))
	return err
}

// runActivity calculates one activity in a fresh session and renders it.
func runActivity(cmd *cobra.Command, act engine.Activity, outputFlag string) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(outputFlag)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	session := engine.NewSession(reg)
	rec, err := session.Add(ctx, act)
	if err != nil {
		return fmt.Errorf("%s: %w", act.Kind, err)
	}

	opts := renderOptions(reg, "")
	if format == engine.FormatTable {
		cmd.PrintErrln(engine.AddedMessage(rec, opts.Precision))
	}
	return renderLedger(cmd.OutOrStdout(), format, session.Ledger(), opts)
}

// reportActivityErrors prints per-activity failures to stderr.
func reportActivityErrors(ctx context.Context, cmd *cobra.Command, errs []engine.ActivityError) {
	log := logging.FromContext(ctx)
	for _, e := range errs {
		log.Warn().Int("activity", e.Index+1).Str("kind", string(e.Kind)).Err(e.Err).Msg("activity skipped")
		cmd.PrintErrf("Warning: %v\n", e)
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeError
}
