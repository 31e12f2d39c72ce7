package engine

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/ledger"
)

// Output formats accepted by Render.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatCSV    = "csv"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// shareBarWidth is the width in cells of a 100% share bar.
const shareBarWidth = 24

// percent converts a share to a percentage.
const percent = 100

// EmptyLedgerMessage is printed instead of tables for an empty ledger.
const EmptyLedgerMessage = "No emissions recorded yet."

// CSVHeader is the column order of WriteCSV.
//
//nolint:gochecknoglobals // Fixed export layout.
var CSVHeader = []string{"Scope", "Category", "Activity", "Unit", "Emission Factor", "Emissions tCO2e"}

// RenderOptions carries presentation settings and report metadata.
type RenderOptions struct {
	// Precision is the number of decimals for tonnes and activities.
	Precision int

	// Title names the reporting entity or period, e.g. the sheet name.
	Title string

	RegistryName    string
	RegistryVersion string

	// GeneratedAt stamps JSON reports. Zero means time.Now().
	GeneratedAt time.Time
}

// Render writes l in format. The table format is the detailed table followed
// by the scope summary.
func Render(w io.Writer, format string, l *ledger.Ledger, opts RenderOptions) error {
	switch format {
	case FormatTable:
		if err := RenderTable(w, l, opts); err != nil {
			return err
		}
		if l.Len() == 0 {
			return nil
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return RenderSummary(w, l, opts)
	case FormatJSON:
		return RenderJSON(w, l, opts)
	case FormatNDJSON:
		return RenderNDJSON(w, l)
	case FormatCSV:
		return WriteCSV(w, l)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// RenderTable writes the detailed per-record table.
func RenderTable(w io.Writer, l *ledger.Ledger, opts RenderOptions) error {
	if l.Len() == 0 {
		_, err := fmt.Fprintln(w, EmptyLedgerMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if opts.Title != "" {
		if _, err := fmt.Fprintf(tw, "%s\n\n", opts.Title); err != nil {
			return fmt.Errorf("writing title: %w", err)
		}
	}
	if _, err := fmt.Fprint(tw, "SCOPE\tCATEGORY\tACTIVITY\tUNIT\tFACTOR\tEMISSIONS (tCO2e)\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprint(tw, "-----\t--------\t--------\t----\t------\t-----------------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, rec := range l.DetailedRows() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Scope,
			rec.Category,
			formatActivity(rec, opts.Precision),
			rec.Unit,
			formatFactor(rec),
			greenops.FormatFloat(rec.EmissionsTonnes, opts.Precision),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if _, err := fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%s\n",
		greenops.FormatFloat(l.GrandTotal(), opts.Precision)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	return tw.Flush()
}

// RenderSummary writes emissions by scope with share-of-total bars, the
// total footprint and, when meaningful, an equivalency line.
func RenderSummary(w io.Writer, l *ledger.Ledger, opts RenderOptions) error {
	if l.Len() == 0 {
		_, err := fmt.Fprintln(w, EmptyLedgerMessage)
		return err
	}

	total := l.GrandTotal()
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprint(tw, "SCOPE\tRECORDS\tEMISSIONS (tCO2e)\tSHARE\t\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range l.ScopeRows() {
		share := shareOf(row.TotalTonnes, total)
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%5.1f%%\t%s\n",
			row.Label,
			row.Records,
			greenops.FormatFloat(row.TotalTonnes, opts.Precision),
			share*percent,
			shareBar(share),
		); err != nil {
			return fmt.Errorf("writing scope row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nTotal carbon footprint: %s\n",
		greenops.FormatTonnes(total, opts.Precision)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	if eq := greenops.Equivalencies(total); !eq.IsEmpty {
		if _, err := fmt.Fprintln(w, eq.DisplayText); err != nil {
			return fmt.Errorf("writing equivalencies: %w", err)
		}
	}
	return nil
}

// Report is the JSON document written by RenderJSON.
type Report struct {
	Metadata ReportMetadata            `json:"metadata"`
	Records  []greenops.EmissionRecord `json:"records"`
	Summary  ReportSummary             `json:"summary"`
}

// ReportMetadata describes where a report came from.
type ReportMetadata struct {
	Title           string    `json:"title,omitempty"`
	Registry        string    `json:"registry,omitempty"`
	RegistryVersion string    `json:"registry_version,omitempty"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// ReportSummary holds the ledger aggregates.
type ReportSummary struct {
	ByScope       []ledger.ScopeTotal         `json:"by_scope"`
	ByCategory    []ledger.CategoryTotal      `json:"by_category"`
	TotalTonnes   float64                     `json:"total_tco2e"`
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
}

// BuildReport assembles the JSON report for l. Slices are never nil so
// empty ledgers encode as [] rather than null.
func BuildReport(l *ledger.Ledger, opts RenderOptions) Report {
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	records := l.DetailedRows()
	if records == nil {
		records = []greenops.EmissionRecord{}
	}
	byScope := l.ScopeRows()
	if byScope == nil {
		byScope = []ledger.ScopeTotal{}
	}
	byCategory := l.SummaryByCategory()
	if byCategory == nil {
		byCategory = []ledger.CategoryTotal{}
	}

	total := l.GrandTotal()
	summary := ReportSummary{ByScope: byScope, ByCategory: byCategory, TotalTonnes: total}
	if eq := greenops.Equivalencies(total); !eq.IsEmpty {
		summary.Equivalencies = &eq
	}

	return Report{
		Metadata: ReportMetadata{
			Title:           opts.Title,
			Registry:        opts.RegistryName,
			RegistryVersion: opts.RegistryVersion,
			GeneratedAt:     generated,
		},
		Records: records,
		Summary: summary,
	}
}

// RenderJSON writes the indented JSON report.
func RenderJSON(w io.Writer, l *ledger.Ledger, opts RenderOptions) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(BuildReport(l, opts)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderNDJSON writes one JSON record per line with no summary.
func RenderNDJSON(w io.Writer, l *ledger.Ledger) error {
	for _, rec := range l.DetailedRows() {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	return nil
}

// WriteCSV exports the detailed rows with CSVHeader columns. Numbers are
// written unrounded.
func WriteCSV(w io.Writer, l *ledger.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range l.DetailedRows() {
		if err := cw.Write([]string{
			rec.Scope.String(),
			rec.Category,
			strconv.FormatFloat(rec.Activity, 'f', -1, 64),
			rec.Unit,
			strconv.FormatFloat(rec.Factor.Value, 'f', -1, 64),
			strconv.FormatFloat(rec.EmissionsTonnes, 'f', -1, 64),
		}); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderDual writes location-based and market-based figures side by side.
// The pair is for disclosure only; one of them belongs in a footprint.
func RenderDual(w io.Writer, dual greenops.DualElectricity, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprint(tw, "METHOD\tACTIVITY\tFACTOR\tEMISSIONS (tCO2e)\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range []greenops.EmissionRecord{dual.Location, dual.Market} {
		if _, err := fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n",
			rec.Method.Label(),
			formatActivity(rec, precision), rec.Unit,
			formatFactor(rec),
			greenops.FormatFloat(rec.EmissionsTonnes, precision),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "\nReport one method per footprint; the two figures describe the same consumption.")
	return err
}

// AddedMessage is the confirmation shown after a record is appended.
func AddedMessage(rec greenops.EmissionRecord, precision int) string {
	return fmt.Sprintf("%s added (%s, %s)", greenops.FormatTonnes(rec.EmissionsTonnes, precision),
		rec.Scope, rec.Category)
}

func formatActivity(rec greenops.EmissionRecord, precision int) string {
	s := greenops.FormatFloat(rec.Activity, precision)
	if rec.RenewableActivity > 0 {
		s += " (" + greenops.FormatFloat(rec.RenewableActivity, precision) + " renewable)"
	}
	return s
}

func formatFactor(rec greenops.EmissionRecord) string {
	return strconv.FormatFloat(rec.Factor.Value, 'f', -1, 64) + " " + rec.Factor.Unit
}

func shareOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total
}

func shareBar(share float64) string {
	n := int(math.Round(share * shareBarWidth))
	if n < 0 {
		n = 0
	}
	if n > shareBarWidth {
		n = shareBarWidth
	}
	return strings.Repeat("█", n)
}
