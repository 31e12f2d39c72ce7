package engine

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/logging"
)

const tolerance = 1e-9

func TestSession_ScenarioTotals(t *testing.T) {
	override := 0.45
	gas := Activity{Kind: KindCombustion, Fuel: "natural_gas", Quantity: 1000}
	goods := Activity{Kind: KindProcurement, SpendEUR: 50000, Factor: &override}

	tests := []struct {
		name      string
		elec      Activity
		wantTotal float64
	}{
		{
			name:      "location-based",
			elec:      Activity{Kind: KindElectricity, Country: "EU", Method: "location", ElectricityKWh: 10000},
			wantTotal: 27.152,
		},
		{
			name: "market-based",
			elec: Activity{Kind: KindElectricity, Country: "EU", Method: "market",
				ElectricityKWh: 10000, RenewableKWh: 4000},
			wantTotal: 26.052,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(factors.Default())
			errs := s.AddAll(context.Background(), []Activity{gas, tt.elec, goods})
			require.Empty(t, errs)

			l := s.Ledger()
			assert.Equal(t, 3, l.Len())
			assert.InDelta(t, tt.wantTotal, l.GrandTotal(), tolerance)
			assert.Len(t, l.SummaryByScope(), 3)
		})
	}
}

func TestSession_EmptyLedger(t *testing.T) {
	s := NewSession(factors.Default())

	assert.Equal(t, 0, s.Ledger().Len())
	assert.Empty(t, s.Ledger().SummaryByScope())
	assert.Equal(t, 0.0, s.Ledger().GrandTotal())
}

func TestSession_AddRejectsWithoutAppending(t *testing.T) {
	s := NewSession(factors.Default())

	_, err := s.Add(context.Background(), Activity{Kind: KindCombustion, Fuel: "coal", Quantity: 1})
	require.ErrorIs(t, err, factors.ErrUnknownFactorKey)
	assert.Equal(t, 0, s.Ledger().Len())

	rec, err := s.Add(context.Background(), Activity{Kind: KindCombustion, Fuel: "diesel", Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Ledger().Len())
	assert.Equal(t, rec.ID, s.Ledger().DetailedRows()[0].ID)
}

func TestSession_AddAllContinuesPastFailures(t *testing.T) {
	s := NewSession(factors.Default())

	errs := s.AddAll(context.Background(), []Activity{
		{Kind: KindCombustion, Fuel: "diesel", Quantity: 100},
		{Kind: KindElectricity, Country: "US", Method: "location", ElectricityKWh: 100},
		{Kind: KindTravel, Mode: "rail", DistanceKM: 100},
		{Kind: KindElectricity, Country: "DE", Method: "market", ElectricityKWh: 10, RenewableKWh: 20},
	})

	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Index)
	assert.ErrorIs(t, errs[0], factors.ErrUnknownFactorKey)
	assert.Equal(t, 3, errs[1].Index)
	assert.ErrorIs(t, errs[1], greenops.ErrInvalidQuantity)
	assert.Equal(t, 2, s.Ledger().Len())
}

func TestSession_AddSheetReportsSheetPositions(t *testing.T) {
	sheet, err := ParseSheet([]byte(`
activities:
  - {kind: combustion, fuel: diesel, quantity: 10}
  - {kind: combustion, fuel: diesel, volume: 10}
  - {kind: travel, mode: rocket, distance_km: 10}
  - {kind: travel, mode: bus, distance_km: 10}
`))
	require.NoError(t, err)

	s := NewSession(factors.Default())
	errs := s.AddSheet(context.Background(), sheet)

	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Index)
	assert.ErrorIs(t, errs[0], ErrInvalidSheet)
	assert.Equal(t, 2, errs[1].Index)
	assert.ErrorIs(t, errs[1], factors.ErrUnknownFactorKey)
	assert.Equal(t, 2, s.Ledger().Len())
}

func TestSession_LogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: logging.FormatJSON}, &buf)
	ctx := logging.ContextWithTraceID(logger.WithContext(context.Background()), "trace-123")

	s := NewSession(factors.Default())
	s.AddAll(ctx, []Activity{{Kind: KindTravel, Mode: "car", DistanceKM: 10}})

	out := buf.String()
	assert.Contains(t, out, `"component":"engine"`)
	assert.Contains(t, out, `"trace_id":"trace-123"`)
	assert.Contains(t, out, "record appended")
}

func TestSession_SilentWithoutLogger(t *testing.T) {
	// No logger in context: zerolog.Ctx yields a disabled logger.
	assert.Equal(t, zerolog.Disabled, logging.FromContext(context.Background()).GetLevel())

	s := NewSession(factors.Default())
	_, err := s.Add(context.Background(), Activity{Kind: KindTravel, Mode: "car", DistanceKM: 10})
	assert.NoError(t, err)
}
