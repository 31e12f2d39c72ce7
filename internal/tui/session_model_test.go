package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

const tolerance = 1e-9

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(m *SessionModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func newTestModel() *SessionModel {
	return NewSessionModel(context.Background(), factors.Default(), 2)
}

func TestSessionModel_AddsCombustion(t *testing.T) {
	m := newTestModel()

	// fuel -> Natural Gas -> 1000
	send(m, key(tea.KeyEnter))
	assert.Equal(t, StepKey, m.Step())
	send(m, key(tea.KeyEnter))
	assert.Equal(t, StepQuantity, m.Step())
	send(m, runes("1000"), key(tea.KeyEnter))

	require.NoError(t, m.Err())
	assert.Equal(t, StepDomain, m.Step())
	assert.Equal(t, "1.90 tCO2e added (Scope 1, Natural Gas)", m.Status())

	l := m.Session().Ledger()
	require.Equal(t, 1, l.Len())
	assert.InDelta(t, 1.902, l.GrandTotal(), tolerance)
	assert.Contains(t, m.View(), "Natural Gas")
}

func TestSessionModel_MarketBasedElectricity(t *testing.T) {
	m := newTestModel()

	send(m,
		key(tea.KeyDown), key(tea.KeyEnter), // electricity
		key(tea.KeyEnter),                   // EU
	)
	require.Equal(t, StepMethod, m.Step())

	send(m, key(tea.KeyDown), key(tea.KeyEnter)) // market-based
	require.Equal(t, StepQuantity, m.Step())

	send(m, runes("10,000"), key(tea.KeyEnter))
	require.Equal(t, StepRenewable, m.Step())

	send(m, runes("4000"), key(tea.KeyEnter))
	require.NoError(t, m.Err())

	rows := m.Session().Ledger().DetailedRows()
	require.Len(t, rows, 1)
	assert.Equal(t, greenops.MethodMarket, rows[0].Method)
	assert.InDelta(t, 10000, rows[0].Activity, tolerance)
	assert.InDelta(t, 4000, rows[0].RenewableActivity, tolerance)
	assert.InDelta(t, 1.65, rows[0].EmissionsTonnes, tolerance)
}

func TestSessionModel_RejectedInputKeepsSessionGoing(t *testing.T) {
	m := newTestModel()

	send(m, key(tea.KeyEnter), key(tea.KeyEnter), runes("lots"), key(tea.KeyEnter))
	assert.ErrorIs(t, m.Err(), greenops.ErrInvalidQuantity)
	assert.Equal(t, StepQuantity, m.Step(), "prompt stays open for a correction")
	assert.Contains(t, m.View(), "Error:")

	// Clear the field and enter a negative amount: rejected by the calculator.
	for range len("lots") {
		send(m, key(tea.KeyBackspace))
	}
	send(m, runes("-5"), key(tea.KeyEnter))
	assert.ErrorIs(t, m.Err(), greenops.ErrInvalidQuantity)
	assert.Equal(t, 0, m.Session().Ledger().Len())

	// Escape abandons the entry; the next one succeeds.
	send(m, key(tea.KeyEsc))
	assert.Equal(t, StepDomain, m.Step())

	send(m,
		key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyEnter), // travel
		key(tea.KeyEnter), runes("1000"), key(tea.KeyEnter))
	require.NoError(t, m.Err())
	assert.Equal(t, 1, m.Session().Ledger().Len())
}

func TestSessionModel_MarketRenewableExceedsTotal(t *testing.T) {
	m := newTestModel()

	send(m,
		key(tea.KeyDown), key(tea.KeyEnter),
		key(tea.KeyEnter),
		key(tea.KeyDown), key(tea.KeyEnter),
		runes("100"), key(tea.KeyEnter),
		runes("150"), key(tea.KeyEnter),
	)

	assert.ErrorIs(t, m.Err(), greenops.ErrInvalidQuantity)
	assert.Equal(t, StepRenewable, m.Step())
	assert.Equal(t, 0, m.Session().Ledger().Len())
}

func TestSessionModel_CursorBounds(t *testing.T) {
	m := newTestModel()

	send(m, key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)

	for range 10 {
		send(m, key(tea.KeyDown))
	}
	assert.Equal(t, len(factors.AllDomains())-1, m.cursor)
}

func TestSessionModel_Quit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, StepQuitting, m.Step())
	assert.Empty(t, m.View())

	m = newTestModel()
	send(m, key(tea.KeyEnter), key(tea.KeyEnter))
	// In a text field "q" is input, not quit.
	send(m, runes("q"))
	assert.Equal(t, StepQuantity, m.Step())

	_, cmd = m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, StepQuitting, m.Step())
}

func TestSessionModel_WindowSize(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Nil(t, m.Init())
}

func TestSessionModel_ViewShowsEmptyLedger(t *testing.T) {
	view := newTestModel().View()

	assert.Contains(t, view, "Activity type:")
	assert.Contains(t, view, "No emissions recorded yet.")
}
