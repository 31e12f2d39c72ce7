// Package ledger holds the footprint ledger: an append-only, ordered
// collection of emission records with scope aggregation.
//
// A Ledger belongs to one calculation session. It is not safe for concurrent
// use and is never shared between sessions.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rshade/footprint/internal/greenops"
)

// Ledger is an ordered sequence of emission records.
type Ledger struct {
	records []greenops.EmissionRecord
}

// ScopeTotal is one row of the per-scope summary.
type ScopeTotal struct {
	Scope       greenops.Scope `json:"scope"`
	Label       string         `json:"label"`
	Records     int            `json:"records"`
	TotalTonnes float64        `json:"total_tco2e"`
}

// CategoryTotal is one row of the per-category summary.
type CategoryTotal struct {
	Scope       greenops.Scope `json:"scope"`
	Category    string         `json:"category"`
	TotalTonnes float64        `json:"total_tco2e"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds rec at the end of the ledger.
func (l *Ledger) Append(rec greenops.EmissionRecord) {
	l.records = append(l.records, rec)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// DetailedRows returns a copy of the records in append order.
func (l *Ledger) DetailedRows() []greenops.EmissionRecord {
	out := make([]greenops.EmissionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// SummaryByScope sums emissions per scope. Scopes without records are absent.
// Sums are exact decimal arithmetic, so the result does not depend on the
// order records were appended in.
func (l *Ledger) SummaryByScope() map[greenops.Scope]float64 {
	sums := l.scopeSums()
	out := make(map[greenops.Scope]float64, len(sums))
	for scope, sum := range sums {
		out[scope] = sum.InexactFloat64()
	}
	return out
}

// GrandTotal sums emissions over all records. It is zero for an empty ledger.
// It is built from the same per-scope values SummaryByScope returns, added in
// AllScopes order, so it equals their float sum in that order exactly.
func (l *Ledger) GrandTotal() float64 {
	sums := l.scopeSums()
	total := 0.0
	for _, scope := range greenops.AllScopes() {
		if sum, ok := sums[scope]; ok {
			total += sum.InexactFloat64()
		}
	}
	return total
}

// ScopeRows returns the per-scope summary ordered by scope, for charts and
// tables. Scopes without records are absent.
func (l *Ledger) ScopeRows() []ScopeTotal {
	sums := l.scopeSums()
	counts := make(map[greenops.Scope]int, len(sums))
	for _, rec := range l.records {
		counts[rec.Scope]++
	}

	rows := make([]ScopeTotal, 0, len(sums))
	for scope, sum := range sums {
		rows = append(rows, ScopeTotal{
			Scope:       scope,
			Label:       scope.String(),
			Records:     counts[scope],
			TotalTonnes: sum.InexactFloat64(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Scope < rows[j].Scope })
	return rows
}

// SummaryByCategory sums emissions per (scope, category), ordered by first
// appearance in the ledger.
func (l *Ledger) SummaryByCategory() []CategoryTotal {
	type key struct {
		scope    greenops.Scope
		category string
	}

	var order []key
	sums := make(map[key]decimal.Decimal)
	for _, rec := range l.records {
		k := key{scope: rec.Scope, category: rec.Category}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(decimal.NewFromFloat(rec.EmissionsTonnes))
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, k := range order {
		out = append(out, CategoryTotal{Scope: k.scope, Category: k.category, TotalTonnes: sums[k].InexactFloat64()})
	}
	return out
}

func (l *Ledger) scopeSums() map[greenops.Scope]decimal.Decimal {
	sums := make(map[greenops.Scope]decimal.Decimal)
	for _, rec := range l.records {
		sums[rec.Scope] = sums[rec.Scope].Add(decimal.NewFromFloat(rec.EmissionsTonnes))
	}
	return sums
}
