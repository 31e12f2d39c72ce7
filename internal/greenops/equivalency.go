package greenops

import (
	"fmt"
	"math"
)

// Equivalencies expresses a footprint in tonnes CO2e as relatable activities
// (miles driven, smartphones charged, days of home electricity) using EPA
// factors.
//
// Totals below MinEquivalencyThresholdKg, negative or non-finite totals return
// an empty output; the equivalencies would be meaningless.
func Equivalencies(tonnes float64) EquivalencyOutput {
	kg := tonnes * KgPerTonne
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	homeDays := kg / EPAHomeDayFactor

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: formatEquivalencyValue(miles),
			Label: "miles driven"},
		{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: formatEquivalencyValue(phones),
			Label: "smartphones charged"},
		{Type: EquivalencyHomeDays, Value: homeDays, FormattedValue: formatEquivalencyValue(homeDays),
			Label: "days of home electricity"},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			results[0].FormattedValue, results[1].FormattedValue),
	}
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
