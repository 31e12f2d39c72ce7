package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/ledger"
)

// Layout constants.
const (
	borderPadding     = 2
	maxCategoryLen    = 44
	truncateSuffix    = "..."
	percentMultiplier = 100
)

// RenderLedgerSummary renders a boxed summary of l: the total, the share of
// each scope present and, when meaningful, an equivalency line.
func RenderLedgerSummary(l *ledger.Ledger, width, precision int) string {
	if l.Len() == 0 {
		return InfoStyle.Render("No emissions recorded yet.")
	}

	total := l.GrandTotal()
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("CARBON FOOTPRINT"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Total:   "))
	content.WriteString(ValueStyle.Render(greenops.FormatTonnes(total, precision)))
	content.WriteString(LabelStyle.Render("    Records: "))
	content.WriteString(ValueStyle.Render(strconv.Itoa(l.Len())))
	content.WriteString("\n")

	parts := make([]string, 0, len(greenops.AllScopes()))
	for _, row := range l.ScopeRows() {
		pct := 0.0
		if total > 0 {
			pct = row.TotalTonnes / total * percentMultiplier
		}
		parts = append(parts, ScopeStyle(int(row.Scope)).Render(
			fmt.Sprintf("%s: %s (%.1f%%)", row.Label, greenops.FormatFloat(row.TotalTonnes, precision), pct)))
	}
	content.WriteString(strings.Join(parts, "  "))

	if eq := greenops.Equivalencies(total); !eq.IsEmpty {
		content.WriteString("\n")
		content.WriteString(SubtleStyle.Render(eq.DisplayText))
	}

	if width <= borderPadding {
		return BoxStyle.Render(content.String())
	}
	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// NewRecordTable builds a read-only table of ledger records.
func NewRecordTable(records []greenops.EmissionRecord, height, precision int) table.Model {
	columns := []table.Column{
		{Title: "Scope", Width: 8},
		{Title: "Category", Width: maxCategoryLen},
		{Title: "Activity", Width: 16},
		{Title: "Unit", Width: 6},
		{Title: "tCO2e", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(RecordRows(records, precision)),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// RecordRows converts records into table rows.
func RecordRows(records []greenops.EmissionRecord, precision int) []table.Row {
	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = table.Row{
			rec.Scope.String(),
			truncate(rec.Category, maxCategoryLen),
			greenops.FormatFloat(rec.Activity, precision),
			rec.Unit,
			greenops.FormatFloat(rec.EmissionsTonnes, precision),
		}
	}
	return rows
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-len(truncateSuffix)]) + truncateSuffix
}
