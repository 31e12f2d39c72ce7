package greenops

// KgPerTonne converts factor-scale kilograms into reporting-scale tonnes.
const KgPerTonne = 1000.0

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e of one unit of the activity:
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest footprint that gets equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// Record units for activities whose unit is not taken from the factor.
const (
	UnitKWh = "kWh"
	UnitEUR = "EUR"
	UnitKM  = "km"
)

// OverrideSource labels factors supplied by the caller instead of the registry.
const OverrideSource = "user override"
