package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

// SessionStep is the prompt the session model is showing.
type SessionStep int

const (
	// StepDomain picks fuel, electricity, procurement or travel.
	StepDomain SessionStep = iota
	// StepKey picks the factor key within the domain.
	StepKey
	// StepMethod picks location- or market-based accounting.
	StepMethod
	// StepQuantity reads the activity amount.
	StepQuantity
	// StepRenewable reads the renewable share of market-based electricity.
	StepRenewable
	// StepQuitting ends the program.
	StepQuitting
)

// Default dimensions for the session model.
const (
	sessionDefaultWidth  = 96
	sessionTableHeight   = 8
	quantityCharLimit    = 24
	quantityInputWidth   = 24
	sessionDefaultPrec   = 2
	sessionMinTableRows  = 3
	sessionChromeHeight  = 18
	sessionTableMaxRows  = 20
	sessionPromptPadding = "  "
)

// domainKinds maps each factor domain to the activity kind that uses it.
//
//nolint:gochecknoglobals // Fixed lookup table.
var domainKinds = map[factors.Domain]engine.Kind{
	factors.DomainFuel:        engine.KindCombustion,
	factors.DomainElectricity: engine.KindElectricity,
	factors.DomainProcurement: engine.KindProcurement,
	factors.DomainTravel:      engine.KindTravel,
}

// OptionSource lists the selectable factor keys of a domain.
type OptionSource interface {
	Options(domain factors.Domain) ([]factors.Option, error)
}

// SessionModel is the Bubble Tea model for an interactive footprint session.
// Each completed prompt sequence adds one record to the session ledger;
// rejected input is shown inline and the session continues.
type SessionModel struct {
	ctx       context.Context
	session   *engine.Session
	options   OptionSource
	precision int

	step    SessionStep
	cursor  int
	domain  factors.Domain
	choices []factors.Option
	key     string
	method  greenops.ElectricityMethod
	amount  float64

	input   textinput.Model
	records table.Model

	status string
	err    error

	width  int
	height int
}

// NewSessionModel returns a model with an empty session backed by src.
func NewSessionModel(ctx context.Context, src *factors.Registry, precision int) *SessionModel {
	if precision < 0 {
		precision = sessionDefaultPrec
	}
	return &SessionModel{
		ctx:       ctx,
		session:   engine.NewSession(src),
		options:   src,
		precision: precision,
		step:      StepDomain,
		input:     newQuantityInput(),
		records:   NewRecordTable(nil, sessionTableHeight, precision),
		width:     sessionDefaultWidth,
	}
}

func newQuantityInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = quantityCharLimit
	ti.Width = quantityInputWidth
	return ti
}

// Session returns the underlying engine session.
func (m *SessionModel) Session() *engine.Session { return m.session }

// Step returns the current prompt.
func (m *SessionModel) Step() SessionStep { return m.step }

// Err returns the last rejected input, if any.
func (m *SessionModel) Err() error { return m.err }

// Status returns the last confirmation message.
func (m *SessionModel) Status() string { return m.status }

// Init initializes the model.
func (m *SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.records.SetHeight(m.tableHeight())
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *SessionModel) tableHeight() int {
	h := m.height - sessionChromeHeight
	if h < sessionMinTableRows {
		return sessionMinTableRows
	}
	if h > sessionTableMaxRows {
		return sessionTableMaxRows
	}
	return h
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for session navigation.
func (m *SessionModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.step = StepQuitting
		return m, tea.Quit
	}

	if m.step == StepQuantity || m.step == StepRenewable {
		return m.handleInputKey(msg)
	}

	switch msg.Type {
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			m.step = StepQuitting
			return m, tea.Quit
		}
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < m.choiceCount()-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		return m.choose()
	case tea.KeyEsc:
		m.reset()
	}
	return m, nil
}

//nolint:exhaustive // Only handling relevant key types for text entry.
func (m *SessionModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.reset()
		return m, nil
	case tea.KeyEnter:
		return m.submitAmount()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SessionModel) choiceCount() int {
	switch m.step {
	case StepDomain:
		return len(factors.AllDomains())
	case StepKey:
		return len(m.choices)
	case StepMethod:
		return 2 //nolint:mnd // Location and market.
	default:
		return 0
	}
}

// choose commits the highlighted choice and advances.
func (m *SessionModel) choose() (tea.Model, tea.Cmd) {
	m.err = nil

	switch m.step {
	case StepDomain:
		m.domain = factors.AllDomains()[m.cursor]
		choices, err := m.options.Options(m.domain)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.choices = choices
		m.step = StepKey
		m.cursor = 0

	case StepKey:
		if len(m.choices) == 0 {
			return m, nil
		}
		m.key = m.choices[m.cursor].Key
		m.cursor = 0
		if m.domain == factors.DomainElectricity {
			m.step = StepMethod
			return m, nil
		}
		return m, m.startInput(StepQuantity)

	case StepMethod:
		m.method = []greenops.ElectricityMethod{greenops.MethodLocation, greenops.MethodMarket}[m.cursor]
		m.cursor = 0
		return m, m.startInput(StepQuantity)

	case StepQuantity, StepRenewable, StepQuitting:
	}
	return m, nil
}

func (m *SessionModel) startInput(step SessionStep) tea.Cmd {
	m.step = step
	m.input.Reset()
	m.input.Placeholder = m.inputPlaceholder()
	return m.input.Focus()
}

func (m *SessionModel) inputPlaceholder() string {
	if m.step == StepRenewable {
		return "renewable kWh (0 if none)"
	}
	switch m.domain {
	case factors.DomainFuel:
		return "quantity"
	case factors.DomainElectricity:
		return "kWh"
	case factors.DomainProcurement:
		return "spend in EUR"
	case factors.DomainTravel:
		return "distance in km"
	default:
		return ""
	}
}

// submitAmount parses the text input and either asks for the renewable
// share or adds the activity.
func (m *SessionModel) submitAmount() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(strings.ReplaceAll(m.input.Value(), ",", ""))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.err = fmt.Errorf("%w: %q is not a number", greenops.ErrInvalidQuantity, m.input.Value())
		return m, nil
	}

	if m.step == StepQuantity && m.method == greenops.MethodMarket {
		m.amount = v
		m.err = nil
		return m, m.startInput(StepRenewable)
	}

	act := m.activity(v)
	rec, addErr := m.session.Add(m.ctx, act)
	if addErr != nil {
		// Keep the prompt so the amount can be corrected.
		m.err = addErr
		return m, nil
	}

	m.status = engine.AddedMessage(rec, m.precision)
	m.records.SetRows(RecordRows(m.session.Ledger().DetailedRows(), m.precision))
	m.reset()
	return m, nil
}

// activity builds the activity for the current selections. v is the last
// amount entered.
func (m *SessionModel) activity(v float64) engine.Activity {
	act := engine.Activity{Kind: domainKinds[m.domain]}
	switch m.domain {
	case factors.DomainFuel:
		act.Fuel, act.Quantity = m.key, v
	case factors.DomainElectricity:
		act.Country, act.Method = m.key, string(m.method)
		act.ElectricityKWh = v
		if m.step == StepRenewable {
			act.ElectricityKWh, act.RenewableKWh = m.amount, v
		}
	case factors.DomainProcurement:
		act.Category, act.SpendEUR = m.key, v
	case factors.DomainTravel:
		act.Mode, act.DistanceKM = m.key, v
	}
	return act
}

// reset returns to the domain prompt, keeping status and ledger.
func (m *SessionModel) reset() {
	m.step = StepDomain
	m.cursor = 0
	m.domain = ""
	m.choices = nil
	m.key = ""
	m.method = ""
	m.amount = 0
	m.input.Blur()
	m.input.Reset()
}

// View renders the current view.
func (m *SessionModel) View() string {
	if m.step == StepQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("footprint: interactive session"))
	b.WriteString("\n\n")
	b.WriteString(m.renderPrompt())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(SuccessStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.session.Ledger().Len() > 0 {
		b.WriteString(m.records.View())
		b.WriteString("\n")
	}
	b.WriteString(RenderLedgerSummary(m.session.Ledger(), m.width, m.precision))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(m.helpText()))
	return b.String()
}

func (m *SessionModel) renderPrompt() string {
	switch m.step {
	case StepDomain:
		labels := make([]string, 0, len(factors.AllDomains()))
		for _, d := range factors.AllDomains() {
			labels = append(labels, fmt.Sprintf("%s (%s)", d, domainKinds[d]))
		}
		return LabelStyle.Render("Activity type:") + "\n" + m.renderChoices(labels)
	case StepKey:
		labels := make([]string, 0, len(m.choices))
		for _, opt := range m.choices {
			labels = append(labels, fmt.Sprintf("%s  %s", opt.Label,
				SubtleStyle.Render(fmt.Sprintf("%g %s", opt.Factor.Value, opt.Factor.Unit))))
		}
		return LabelStyle.Render(string(m.domain)+":") + "\n" + m.renderChoices(labels)
	case StepMethod:
		return LabelStyle.Render("Scope 2 method:") + "\n" +
			m.renderChoices([]string{greenops.MethodLocation.Label(), greenops.MethodMarket.Label()})
	case StepQuantity, StepRenewable:
		return LabelStyle.Render(m.inputPlaceholder()+":") + " " + m.input.View()
	case StepQuitting:
	}
	return ""
}

func (m *SessionModel) renderChoices(labels []string) string {
	var b strings.Builder
	for i, label := range labels {
		if i == m.cursor {
			b.WriteString(CursorStyle.Render("> " + label))
		} else {
			b.WriteString(sessionPromptPadding + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *SessionModel) helpText() string {
	if m.step == StepQuantity || m.step == StepRenewable {
		return "enter: add  esc: cancel  ctrl+c: quit"
	}
	return "up/down: move  enter: select  esc: restart  q: quit"
}
