// Package engine runs footprint sessions: it routes activities to the
// greenops calculators, appends the resulting records to a ledger and
// renders that ledger as tables, summaries, JSON, NDJSON or CSV.
package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/ledger"
	"github.com/rshade/footprint/internal/logging"
)

// Session owns one ledger and the factor source used to fill it. A session
// is not safe for concurrent use.
type Session struct {
	src    greenops.FactorSource
	ledger *ledger.Ledger
}

// NewSession returns a session with an empty ledger.
func NewSession(src greenops.FactorSource) *Session {
	return &Session{src: src, ledger: ledger.New()}
}

// Ledger returns the session's ledger.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Add calculates one activity and appends the record. On error nothing is
// appended.
func (s *Session) Add(ctx context.Context, act Activity) (greenops.EmissionRecord, error) {
	log := logging.FromContext(ctx)

	rec, err := act.Calculate(s.src)
	if err != nil {
		log.Debug().
			Str("component", "engine").
			Str("operation", "add_activity").
			Str("kind", string(act.Kind)).
			Err(err).
			Msg("activity rejected")
		return greenops.EmissionRecord{}, err
	}

	s.ledger.Append(rec)
	log.Debug().
		Str("component", "engine").
		Str("operation", "add_activity").
		Str("record_id", rec.ID).
		Str("scope", rec.Scope.String()).
		Str("category", rec.Category).
		Float64("emissions_tco2e", rec.EmissionsTonnes).
		Msg("record appended")
	return rec, nil
}

// AddAll adds activities in order. A failing activity is reported and
// skipped; the rest are still added.
func (s *Session) AddAll(ctx context.Context, acts []Activity) []ActivityError {
	var errs []ActivityError
	for i, act := range acts {
		if _, err := s.Add(ctx, act); err != nil {
			errs = append(errs, ActivityError{Index: i, Kind: act.Kind, Err: err})
		}
	}

	logging.FromContext(ctx).Info().
		Str("component", "engine").
		Str("operation", "add_all").
		Int("activities", len(acts)).
		Int("failed", len(errs)).
		Int("ledger_records", s.ledger.Len()).
		Msg("activities processed")
	return errs
}

// AddSheet adds every decodable activity of sheet. Decode failures and
// calculation failures are returned together, ordered by sheet position.
func (s *Session) AddSheet(ctx context.Context, sheet *Sheet) []ActivityError {
	errs := append([]ActivityError(nil), sheet.Invalid...)

	// Activities lost their original positions when invalid entries were
	// removed; map them back so errors point at the right line of the sheet.
	positions := make([]int, 0, len(sheet.Activities))
	invalid := make(map[int]bool, len(sheet.Invalid))
	for _, e := range sheet.Invalid {
		invalid[e.Index] = true
	}
	for i := 0; len(positions) < len(sheet.Activities); i++ {
		if !invalid[i] {
			positions = append(positions, i)
		}
	}

	for _, e := range s.AddAll(ctx, sheet.Activities) {
		e.Index = positions[e.Index]
		errs = append(errs, e)
	}

	slices.SortStableFunc(errs, func(a, b ActivityError) int { return cmp.Compare(a.Index, b.Index) })
	return errs
}
