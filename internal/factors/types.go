// Package factors holds the emission factor registry.
//
// A Registry maps the closed input domains (fuel types, electricity grid
// countries, procurement categories and travel modes) to an EmissionFactor
// carrying its unit and provenance. Registries are immutable once built and
// every enumerated variant must be mapped; an unmapped variant is reported
// when the registry is constructed, never as a silent zero at lookup time.
package factors

import (
	"fmt"
	"strings"
)

// EmissionFactor converts one unit of activity into kilograms of CO2e.
type EmissionFactor struct {
	// Value is kg CO2e per activity unit. Always > 0.
	Value float64 `yaml:"value"  json:"value"`

	// Unit describes the factor, e.g. "kg CO2e / kWh".
	Unit string `yaml:"unit"   json:"unit"`

	// Source is the provenance label (e.g. "EU MRR").
	Source string `yaml:"source" json:"source"`

	// Year is the factor vintage. Zero means unknown (caller-supplied factors).
	Year int `yaml:"year"   json:"year"`
}

// Validate checks the factor invariants: Value > 0 and a non-empty Unit.
func (f EmissionFactor) Validate() error {
	if !(f.Value > 0) {
		return fmt.Errorf("%w: value must be > 0, got %v", ErrInvalidFactor, f.Value)
	}
	if strings.TrimSpace(f.Unit) == "" {
		return fmt.Errorf("%w: unit is required", ErrInvalidFactor)
	}
	return nil
}

// ActivityUnit returns the denominator of the factor unit ("m³" for
// "kg CO2e / m³"). Units without a slash are returned unchanged.
func (f EmissionFactor) ActivityUnit() string {
	idx := strings.LastIndex(f.Unit, "/")
	if idx < 0 {
		return f.Unit
	}
	return strings.TrimSpace(f.Unit[idx+1:])
}

// Provenance renders "source year", or just the source when the year is unknown.
func (f EmissionFactor) Provenance() string {
	if f.Year == 0 {
		return f.Source
	}
	return fmt.Sprintf("%s %d", f.Source, f.Year)
}

// Domain names one of the factor tables.
type Domain string

// Factor domains.
const (
	DomainFuel        Domain = "fuel"
	DomainElectricity Domain = "electricity"
	DomainProcurement Domain = "procurement"
	DomainTravel      Domain = "travel"
)

// AllDomains returns every domain in display order.
func AllDomains() []Domain {
	return []Domain{DomainFuel, DomainElectricity, DomainProcurement, DomainTravel}
}

// ParseDomain converts a case-insensitive domain name into a Domain.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllDomains() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// FuelType is a combustion fuel (scope 1).
type FuelType string

// Fuel types.
const (
	FuelNaturalGas FuelType = "natural_gas"
	FuelDiesel     FuelType = "diesel"
	FuelGasoline   FuelType = "gasoline"
	FuelLPG        FuelType = "lpg"
)

// AllFuelTypes returns every fuel type.
func AllFuelTypes() []FuelType {
	return []FuelType{FuelNaturalGas, FuelDiesel, FuelGasoline, FuelLPG}
}

//nolint:gochecknoglobals // Closed enumeration label table.
var fuelLabels = map[FuelType]string{
	FuelNaturalGas: "Natural Gas",
	FuelDiesel:     "Diesel",
	FuelGasoline:   "Gasoline",
	FuelLPG:        "LPG",
}

// Label returns the display name.
func (f FuelType) Label() string { return labelOr(fuelLabels[f], string(f)) }

// Country is an electricity grid region, keyed by ISO 3166 alpha-2 code
// ("EU" for the EU-27 average).
type Country string

// Grid countries.
const (
	CountryEU Country = "EU"
	CountryDE Country = "DE"
	CountryFR Country = "FR"
	CountryIT Country = "IT"
	CountryES Country = "ES"
	CountryPL Country = "PL"
	CountrySE Country = "SE"
)

// AllCountries returns every grid country.
func AllCountries() []Country {
	return []Country{CountryEU, CountryDE, CountryFR, CountryIT, CountryES, CountryPL, CountrySE}
}

//nolint:gochecknoglobals // Closed enumeration label table.
var countryLabels = map[Country]string{
	CountryEU: "EU Average",
	CountryDE: "Germany",
	CountryFR: "France",
	CountryIT: "Italy",
	CountryES: "Spain",
	CountryPL: "Poland",
	CountrySE: "Sweden",
}

// Label returns the display name.
func (c Country) Label() string { return labelOr(countryLabels[c], string(c)) }

// ProcurementCategory is an EEIO spend category (scope 3).
type ProcurementCategory string

// Procurement categories.
const (
	ProcurementITEquipment            ProcurementCategory = "it_equipment"
	ProcurementOfficeFurniture        ProcurementCategory = "office_furniture"
	ProcurementConstructionServices   ProcurementCategory = "construction_services"
	ProcurementSteelProducts          ProcurementCategory = "steel_products"
	ProcurementChemicals              ProcurementCategory = "chemicals"
	ProcurementTextilesApparel        ProcurementCategory = "textiles_apparel"
	ProcurementFoodCatering           ProcurementCategory = "food_catering"
	ProcurementProfessionalServices   ProcurementCategory = "professional_services"
	ProcurementTransportationServices ProcurementCategory = "transportation_services"
)

// AllProcurementCategories returns every procurement category.
func AllProcurementCategories() []ProcurementCategory {
	return []ProcurementCategory{
		ProcurementITEquipment, ProcurementOfficeFurniture, ProcurementConstructionServices,
		ProcurementSteelProducts, ProcurementChemicals, ProcurementTextilesApparel,
		ProcurementFoodCatering, ProcurementProfessionalServices, ProcurementTransportationServices,
	}
}

//nolint:gochecknoglobals // Closed enumeration label table.
var procurementLabels = map[ProcurementCategory]string{
	ProcurementITEquipment:            "IT Equipment",
	ProcurementOfficeFurniture:        "Office Furniture",
	ProcurementConstructionServices:   "Construction Services",
	ProcurementSteelProducts:          "Steel Products",
	ProcurementChemicals:              "Chemicals",
	ProcurementTextilesApparel:        "Textiles & Apparel",
	ProcurementFoodCatering:           "Food & Catering Services",
	ProcurementProfessionalServices:   "Professional Services",
	ProcurementTransportationServices: "Transportation Services",
}

// Label returns the display name.
func (p ProcurementCategory) Label() string { return labelOr(procurementLabels[p], string(p)) }

// TravelMode is a business travel mode (scope 3), factor per passenger-km.
type TravelMode string

// Travel modes. Flight haul bands carry distinct factors.
const (
	TravelFlightShortHaul  TravelMode = "flight_short_haul"
	TravelFlightMediumHaul TravelMode = "flight_medium_haul"
	TravelFlightLongHaul   TravelMode = "flight_long_haul"
	TravelRail             TravelMode = "rail"
	TravelCar              TravelMode = "car"
	TravelBus              TravelMode = "bus"
)

// AllTravelModes returns every travel mode.
func AllTravelModes() []TravelMode {
	return []TravelMode{
		TravelFlightShortHaul, TravelFlightMediumHaul, TravelFlightLongHaul,
		TravelRail, TravelCar, TravelBus,
	}
}

//nolint:gochecknoglobals // Closed enumeration label table.
var travelLabels = map[TravelMode]string{
	TravelFlightShortHaul:  "Flight (short-haul)",
	TravelFlightMediumHaul: "Flight (medium-haul)",
	TravelFlightLongHaul:   "Flight (long-haul)",
	TravelRail:             "Rail",
	TravelCar:              "Car",
	TravelBus:              "Bus",
}

// Label returns the display name.
func (t TravelMode) Label() string { return labelOr(travelLabels[t], string(t)) }

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// variants returns the canonical keys and labels of a domain's enumeration.
func variants(d Domain) (keys []string, labels map[string]string) {
	labels = make(map[string]string)
	switch d {
	case DomainFuel:
		for _, v := range AllFuelTypes() {
			keys = append(keys, string(v))
			labels[string(v)] = v.Label()
		}
	case DomainElectricity:
		for _, v := range AllCountries() {
			keys = append(keys, string(v))
			labels[string(v)] = v.Label()
		}
	case DomainProcurement:
		for _, v := range AllProcurementCategories() {
			keys = append(keys, string(v))
			labels[string(v)] = v.Label()
		}
	case DomainTravel:
		for _, v := range AllTravelModes() {
			keys = append(keys, string(v))
			labels[string(v)] = v.Label()
		}
	}
	return keys, labels
}
