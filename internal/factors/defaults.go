package factors

import (
	"fmt"
	"sync"
)

// Provenance of the built-in factor set.
const (
	DefaultName    = "EU baseline"
	DefaultVersion = "2024.1.0"

	sourceMRR   = "EU MRR"
	sourceEEA   = "EEA"
	sourceEEIO  = "EXIOBASE EEIO"
	sourceDEFRA = "DEFRA"

	unitGrid        = "kg CO2e / kWh"
	unitSpend       = "kg CO2e / EUR"
	unitPassengerKM = "kg CO2e / km"
)

// defaultTables returns the built-in factor tables. A fresh copy is built on
// every call so callers can derive variants without touching the default.
func defaultTables() map[Domain]map[string]EmissionFactor {
	return map[Domain]map[string]EmissionFactor{
		DomainFuel: {
			string(FuelNaturalGas): {Value: 1.902, Unit: "kg CO2 / m³", Source: sourceMRR, Year: 2024},
			string(FuelDiesel):     {Value: 2.676, Unit: "kg CO2 / liter", Source: sourceMRR, Year: 2024},
			string(FuelGasoline):   {Value: 2.296, Unit: "kg CO2 / liter", Source: sourceMRR, Year: 2024},
			string(FuelLPG):        {Value: 1.537, Unit: "kg CO2 / liter", Source: sourceMRR, Year: 2024},
		},
		DomainElectricity: {
			string(CountryEU): {Value: 0.275, Unit: unitGrid, Source: sourceEEA, Year: 2023},
			string(CountryDE): {Value: 0.385, Unit: unitGrid, Source: sourceEEA, Year: 2023},
			string(CountryFR): {Value: 0.057, Unit: unitGrid, Source: sourceEEA, Year: 2023},
			string(CountryIT): {Value: 0.298, Unit: unitGrid, Source: sourceEEA, Year: 2023},
			string(CountryES): {Value: 0.205, Unit: unitGrid, Source: sourceEEA, Year: 2023},
			string(CountryPL): {Value: 0.734, Unit: unitGrid, Source: sourceEEA, Year: 2023},
			string(CountrySE): {Value: 0.013, Unit: unitGrid, Source: sourceEEA, Year: 2023},
		},
		DomainProcurement: {
			string(ProcurementITEquipment):            {Value: 0.45, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementOfficeFurniture):        {Value: 0.32, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementConstructionServices):   {Value: 0.28, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementSteelProducts):          {Value: 1.90, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementChemicals):              {Value: 1.25, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementTextilesApparel):        {Value: 0.55, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementFoodCatering):           {Value: 0.62, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementProfessionalServices):   {Value: 0.15, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
			string(ProcurementTransportationServices): {Value: 0.41, Unit: unitSpend, Source: sourceEEIO, Year: 2022},
		},
		DomainTravel: {
			string(TravelFlightShortHaul):  {Value: 0.246, Unit: unitPassengerKM, Source: sourceDEFRA, Year: 2024},
			string(TravelFlightMediumHaul): {Value: 0.151, Unit: unitPassengerKM, Source: sourceDEFRA, Year: 2024},
			string(TravelFlightLongHaul):   {Value: 0.193, Unit: unitPassengerKM, Source: sourceDEFRA, Year: 2024},
			string(TravelRail):             {Value: 0.035, Unit: unitPassengerKM, Source: sourceDEFRA, Year: 2024},
			string(TravelCar):              {Value: 0.171, Unit: unitPassengerKM, Source: sourceDEFRA, Year: 2024},
			string(TravelBus):              {Value: 0.105, Unit: unitPassengerKM, Source: sourceDEFRA, Year: 2024},
		},
	}
}

//nolint:gochecknoglobals // Built once; the registry itself is immutable.
var defaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := New(DefaultName, DefaultVersion, defaultTables())
	if err != nil {
		panic(fmt.Sprintf("built-in emission factors are inconsistent: %v", err))
	}
	return reg
})

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry()
}
