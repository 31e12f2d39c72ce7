package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette.
const (
	ColorHeader  = lipgloss.Color("86")
	ColorLabel   = lipgloss.Color("245")
	ColorValue   = lipgloss.Color("255")
	ColorBorder  = lipgloss.Color("63")
	ColorOK      = lipgloss.Color("42")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
	ColorCursor  = lipgloss.Color("212")
	ColorScope1  = lipgloss.Color("208")
	ColorScope2  = lipgloss.Color("220")
	ColorScope3  = lipgloss.Color("39")
	ColorSelectF = lipgloss.Color("229")
	ColorSelectB = lipgloss.Color("57")
)

// Shared styles.
//
//nolint:gochecknoglobals // Style definitions are immutable after init.
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	InfoStyle    = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorOK)
	CursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorCursor)
	BoxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorSelectF).Background(ColorSelectB)
)

// ScopeStyle returns the accent style for a scope number.
func ScopeStyle(scope int) lipgloss.Style {
	switch scope {
	case 1:
		return lipgloss.NewStyle().Foreground(ColorScope1)
	case 2: //nolint:mnd // Scope number.
		return lipgloss.NewStyle().Foreground(ColorScope2)
	default:
		return lipgloss.NewStyle().Foreground(ColorScope3)
	}
}

// OutputMode is how results are shown on the terminal.
type OutputMode int

const (
	// OutputModePlain is uncoloured text for pipes and NO_COLOR.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is lipgloss-styled text on a terminal.
	OutputModeStyled
	// OutputModeInteractive is the Bubble Tea session.
	OutputModeInteractive
)

// isTerminal is swapped in tests.
//
//nolint:gochecknoglobals // Test seam for TTY detection.
var isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }

// DetectOutputMode picks the output mode. plain or NO_COLOR force plain
// output; interactive is only honoured when stdin and stdout are terminals.
func DetectOutputMode(plain, noColor, interactive bool) OutputMode {
	stdoutTTY := isTerminal(os.Stdout.Fd())
	if plain || noColor || os.Getenv("NO_COLOR") != "" || !stdoutTTY {
		return OutputModePlain
	}
	if interactive && isTerminal(os.Stdin.Fd()) {
		return OutputModeInteractive
	}
	return OutputModeStyled
}
