// Package greenops turns activity quantities into emission records.
//
// Each calculator takes a validated quantity plus a factor-selection key,
// looks the factor up in a registry and returns an EmissionRecord in tonnes
// CO2e. Calculators are pure: they never log, never keep state and never
// clamp bad input. The package also renders relatable equivalencies for a
// footprint total.
package greenops

import (
	"fmt"
	"strings"

	"github.com/rshade/footprint/internal/factors"
)

// Scope is a GHG protocol reporting scope.
type Scope int

// Reporting scopes.
const (
	// Scope1 covers direct emissions from owned combustion.
	Scope1 Scope = 1
	// Scope2 covers purchased energy.
	Scope2 Scope = 2
	// Scope3 covers the rest of the value chain.
	Scope3 Scope = 3
)

// AllScopes returns the scopes in reporting order.
func AllScopes() []Scope {
	return []Scope{Scope1, Scope2, Scope3}
}

// String returns "Scope N".
func (s Scope) String() string {
	switch s {
	case Scope1, Scope2, Scope3:
		return fmt.Sprintf("Scope %d", int(s))
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ElectricityMethod selects scope 2 accounting. There is no default: callers
// choose explicitly.
type ElectricityMethod string

// Scope 2 accounting methods.
const (
	// MethodLocation charges all consumption at the grid-average factor.
	MethodLocation ElectricityMethod = "location"
	// MethodMarket charges only the non-renewable residual.
	MethodMarket ElectricityMethod = "market"
)

// ParseElectricityMethod accepts "location", "market" and their "-based" forms.
func ParseElectricityMethod(s string) (ElectricityMethod, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimSuffix(strings.NewReplacer("_", "-").Replace(norm), "-based")
	switch ElectricityMethod(norm) {
	case MethodLocation:
		return MethodLocation, nil
	case MethodMarket:
		return MethodMarket, nil
	default:
		return "", fmt.Errorf("%w: %q (want location or market)", ErrUnknownMethod, s)
	}
}

// Label returns "location-based" or "market-based".
func (m ElectricityMethod) Label() string {
	if m == "" {
		return ""
	}
	return string(m) + "-based"
}

// EmissionRecord is the result of one calculator call. Records are values;
// corrections are new records, never edits.
type EmissionRecord struct {
	// ID is a ULID assigned at creation.
	ID string `json:"id"`

	Scope Scope `json:"scope"`

	// Category is the display label, e.g. "Natural Gas" or "Electricity (Germany, market-based)".
	Category string `json:"category"`

	// Key is the registry key the factor came from. Empty for caller-supplied factors.
	Key string `json:"key,omitempty"`

	// Method is set for scope 2 records only.
	Method ElectricityMethod `json:"method,omitempty"`

	// Activity is the quantity in Unit. For market-based electricity it is
	// total consumption; RenewableActivity is the zero-rated share of it.
	Activity          float64 `json:"activity"`
	RenewableActivity float64 `json:"renewable_activity,omitempty"`
	Unit              string  `json:"unit"`

	Factor factors.EmissionFactor `json:"factor"`

	EmissionsTonnes float64 `json:"emissions_tco2e"`
}

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyHomeDays converts CO2e to days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds the equivalencies of a footprint total.
type EquivalencyOutput struct {
	// InputKg is the footprint in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose line, e.g.
	// "Equivalent to driving ~9,906 miles or charging ~231,387 smartphones".
	DisplayText string `json:"display_text"`

	IsEmpty bool `json:"is_empty"`
}
