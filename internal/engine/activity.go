package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

// Kind selects which calculator an activity is routed to.
type Kind string

// Activity kinds.
const (
	KindCombustion  Kind = "combustion"
	KindElectricity Kind = "electricity"
	KindProcurement Kind = "procurement"
	KindTravel      Kind = "travel"
)

// AllKinds returns the activity kinds in scope order.
func AllKinds() []Kind {
	return []Kind{KindCombustion, KindElectricity, KindProcurement, KindTravel}
}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Activity is one line of activity data. Only the fields of its Kind are
// read:
//
//	combustion:  Fuel, Quantity
//	electricity: Country, Method, ElectricityKWh, RenewableKWh (market only)
//	procurement: Category and/or Factor, SpendEUR
//	travel:      Mode, DistanceKM
type Activity struct {
	Kind Kind   `mapstructure:"kind"           json:"kind"                      yaml:"kind"`
	Note string `mapstructure:"note"           json:"note,omitempty"            yaml:"note,omitempty"`

	Fuel     string  `mapstructure:"fuel"     json:"fuel,omitempty"     yaml:"fuel,omitempty"`
	Quantity float64 `mapstructure:"quantity" json:"quantity,omitempty" yaml:"quantity,omitempty"`

	Country        string  `mapstructure:"country"         json:"country,omitempty"         yaml:"country,omitempty"`
	Method         string  `mapstructure:"method"          json:"method,omitempty"          yaml:"method,omitempty"`
	ElectricityKWh float64 `mapstructure:"electricity_kwh" json:"electricity_kwh,omitempty" yaml:"electricity_kwh,omitempty"`
	RenewableKWh   float64 `mapstructure:"renewable_kwh"   json:"renewable_kwh,omitempty"   yaml:"renewable_kwh,omitempty"`

	Category string   `mapstructure:"category"  json:"category,omitempty"  yaml:"category,omitempty"`
	Factor   *float64 `mapstructure:"factor"    json:"factor,omitempty"    yaml:"factor,omitempty"`
	SpendEUR float64  `mapstructure:"spend_eur" json:"spend_eur,omitempty" yaml:"spend_eur,omitempty"`

	Mode       string  `mapstructure:"mode"        json:"mode,omitempty"        yaml:"mode,omitempty"`
	DistanceKM float64 `mapstructure:"distance_km" json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
}

// Calculate routes the activity to its calculator.
func (a Activity) Calculate(src greenops.FactorSource) (greenops.EmissionRecord, error) {
	switch a.Kind {
	case KindCombustion:
		return greenops.CalculateCombustion(src, factors.FuelType(a.Fuel), a.Quantity)
	case KindElectricity:
		if strings.TrimSpace(a.Method) == "" {
			return greenops.EmissionRecord{}, fmt.Errorf(
				"%w: electricity activities must set method to location or market", greenops.ErrUnknownMethod)
		}
		method, err := greenops.ParseElectricityMethod(a.Method)
		if err != nil {
			return greenops.EmissionRecord{}, err
		}
		return greenops.CalculateElectricity(src, method, a.ElectricityKWh, a.RenewableKWh,
			factors.Country(a.Country))
	case KindProcurement:
		return greenops.CalculatePurchasedGoods(src, a.SpendEUR, factors.ProcurementCategory(a.Category), a.Factor)
	case KindTravel:
		return greenops.CalculateBusinessTravel(src, a.DistanceKM, factors.TravelMode(a.Mode))
	default:
		return greenops.EmissionRecord{}, fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
}

// Sheet is a file of activities processed into one ledger.
type Sheet struct {
	// Name labels the reporting entity or period.
	Name string

	// ElectricityMethod applies to electricity activities without their own.
	ElectricityMethod string

	Activities []Activity

	// Invalid holds entries that could not be decoded, by index.
	Invalid []ActivityError
}

// rawSheet is the on-disk shape. Entries stay untyped so each can be decoded
// and rejected on its own.
type rawSheet struct {
	Name              string           `yaml:"name"`
	ElectricityMethod string           `yaml:"electricity_method"`
	Activities        []map[string]any `yaml:"activities"`
}

// LoadSheet reads an activity sheet from path. YAML and JSON are accepted.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading activity sheet: %w", err)
	}
	sheet, err := ParseSheet(data)
	if err != nil {
		return nil, fmt.Errorf("activity sheet %s: %w", path, err)
	}
	return sheet, nil
}

// ParseSheet decodes an activity sheet. A malformed document is an error; a
// malformed entry is recorded in Sheet.Invalid and the rest are kept.
func ParseSheet(data []byte) (*Sheet, error) {
	var raw rawSheet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSheet, err)
	}
	if len(raw.Activities) == 0 {
		return nil, fmt.Errorf("%w: no activities", ErrInvalidSheet)
	}

	sheet := &Sheet{Name: raw.Name, ElectricityMethod: raw.ElectricityMethod}
	for i, entry := range raw.Activities {
		act, err := decodeActivity(entry)
		if err != nil {
			kind, _ := entry["kind"].(string)
			sheet.Invalid = append(sheet.Invalid, ActivityError{Index: i, Kind: Kind(kind), Err: err})
			continue
		}
		if act.Kind == KindElectricity && act.Method == "" {
			act.Method = raw.ElectricityMethod
		}
		sheet.Activities = append(sheet.Activities, act)
	}
	return sheet, nil
}

// decodeActivity maps one untyped entry onto an Activity, rejecting fields
// that do not exist and accepting quoted numbers.
func decodeActivity(entry map[string]any) (Activity, error) {
	var act Activity
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &act,
	})
	if err != nil {
		return Activity{}, err
	}
	if err = dec.Decode(entry); err != nil {
		return Activity{}, fmt.Errorf("%w: %w", ErrInvalidSheet, err)
	}

	kind, err := ParseKind(string(act.Kind))
	if err != nil {
		return Activity{}, err
	}
	act.Kind = kind
	return act, nil
}

// ActivityError is a failure tied to one activity of a batch.
type ActivityError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e ActivityError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("activity %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("activity %d (%s): %v", e.Index+1, e.Kind, e.Err)
}

func (e ActivityError) Unwrap() error { return e.Err }

// JoinActivityErrors folds errs into a single error, or nil.
func JoinActivityErrors(errs []ActivityError) error {
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, e)
	}
	return errors.Join(out...)
}
