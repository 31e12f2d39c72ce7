package greenops

import (
	"fmt"
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/footprint/internal/factors"
)

// FactorSource is the read-only view of a factor registry the calculators need.
// *factors.Registry implements it.
type FactorSource interface {
	Lookup(domain factors.Domain, key string) (factors.EmissionFactor, error)
	Resolve(domain factors.Domain, key string) (string, error)
	Label(domain factors.Domain, key string) string
}

// CalculateCombustion computes scope 1 emissions for burning quantity units of
// fuel: quantity * factor / 1000. A zero quantity yields a zero-emission record.
func CalculateCombustion(src FactorSource, fuel factors.FuelType, quantity float64) (EmissionRecord, error) {
	if err := checkQuantity("quantity", quantity); err != nil {
		return EmissionRecord{}, err
	}

	key, factor, err := resolve(src, factors.DomainFuel, string(fuel))
	if err != nil {
		return EmissionRecord{}, err
	}

	return newRecord(EmissionRecord{
		Scope:    Scope1,
		Category: src.Label(factors.DomainFuel, key),
		Key:      key,
		Activity: quantity,
		Unit:     factor.ActivityUnit(),
		Factor:   factor,
	}, quantity)
}

// CalculateLocationBased computes scope 2 emissions at the country grid
// average: kwh * factor / 1000.
func CalculateLocationBased(src FactorSource, kwh float64, country factors.Country) (EmissionRecord, error) {
	if err := checkQuantity("electricity_kwh", kwh); err != nil {
		return EmissionRecord{}, err
	}

	key, factor, err := resolve(src, factors.DomainElectricity, string(country))
	if err != nil {
		return EmissionRecord{}, err
	}

	return newRecord(EmissionRecord{
		Scope:    Scope2,
		Category: electricityCategory(src, key, MethodLocation),
		Key:      key,
		Method:   MethodLocation,
		Activity: kwh,
		Unit:     UnitKWh,
		Factor:   factor,
	}, kwh)
}

// CalculateMarketBased computes scope 2 emissions charging only the
// non-renewable residual at the grid factor: (kwh - renewableKWh) * factor / 1000.
// renewableKWh must satisfy 0 <= renewableKWh <= kwh.
func CalculateMarketBased(
	src FactorSource,
	kwh, renewableKWh float64,
	country factors.Country,
) (EmissionRecord, error) {
	if err := checkQuantity("electricity_kwh", kwh); err != nil {
		return EmissionRecord{}, err
	}
	if err := checkQuantity("renewable_kwh", renewableKWh); err != nil {
		return EmissionRecord{}, err
	}
	if renewableKWh > kwh {
		return EmissionRecord{}, fmt.Errorf(
			"%w: renewable_kwh %v exceeds electricity_kwh %v", ErrInvalidQuantity, renewableKWh, kwh)
	}

	key, factor, err := resolve(src, factors.DomainElectricity, string(country))
	if err != nil {
		return EmissionRecord{}, err
	}

	return newRecord(EmissionRecord{
		Scope:             Scope2,
		Category:          electricityCategory(src, key, MethodMarket),
		Key:               key,
		Method:            MethodMarket,
		Activity:          kwh,
		RenewableActivity: renewableKWh,
		Unit:              UnitKWh,
		Factor:            factor,
	}, kwh-renewableKWh)
}

// CalculateElectricity dispatches to the method the caller chose. An empty or
// unknown method fails with ErrUnknownMethod; renewableKWh is ignored for the
// location-based method.
func CalculateElectricity(
	src FactorSource,
	method ElectricityMethod,
	kwh, renewableKWh float64,
	country factors.Country,
) (EmissionRecord, error) {
	switch method {
	case MethodLocation:
		return CalculateLocationBased(src, kwh, country)
	case MethodMarket:
		return CalculateMarketBased(src, kwh, renewableKWh, country)
	default:
		return EmissionRecord{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// DualElectricity holds both scope 2 figures for the same consumption.
type DualElectricity struct {
	Location EmissionRecord `json:"location_based"`
	Market   EmissionRecord `json:"market_based"`
}

// CalculateDualElectricity computes the location-based and market-based
// records side by side for dual disclosure. Only one of them belongs in a
// ledger, otherwise scope 2 is counted twice.
func CalculateDualElectricity(
	src FactorSource,
	kwh, renewableKWh float64,
	country factors.Country,
) (DualElectricity, error) {
	market, err := CalculateMarketBased(src, kwh, renewableKWh, country)
	if err != nil {
		return DualElectricity{}, err
	}
	location, err := CalculateLocationBased(src, kwh, country)
	if err != nil {
		return DualElectricity{}, err
	}
	return DualElectricity{Location: location, Market: market}, nil
}

// CalculatePurchasedGoods computes spend-based scope 3 emissions:
// spendEUR * factor / 1000. A non-nil override (kg CO2e per EUR) takes
// precedence over the category lookup; category may then be empty. A
// non-empty category is still resolved for its display label, so an unknown
// category fails with ErrUnknownFactorKey even when an override is given.
func CalculatePurchasedGoods(
	src FactorSource,
	spendEUR float64,
	category factors.ProcurementCategory,
	override *float64,
) (EmissionRecord, error) {
	if err := checkQuantity("spend_eur", spendEUR); err != nil {
		return EmissionRecord{}, err
	}

	if override != nil {
		factor := factors.EmissionFactor{Value: *override, Unit: "kg CO2e / EUR", Source: OverrideSource}
		if err := factor.Validate(); err != nil {
			return EmissionRecord{}, fmt.Errorf("factor override: %w", err)
		}

		rec := EmissionRecord{Scope: Scope3, Category: "Purchased goods (custom factor)", Activity: spendEUR,
			Unit: UnitEUR, Factor: factor}
		if category != "" {
			key, err := src.Resolve(factors.DomainProcurement, string(category))
			if err != nil {
				return EmissionRecord{}, err
			}
			rec.Key = key
			rec.Category = src.Label(factors.DomainProcurement, key)
		}
		return newRecord(rec, spendEUR)
	}

	key, factor, err := resolve(src, factors.DomainProcurement, string(category))
	if err != nil {
		return EmissionRecord{}, err
	}

	return newRecord(EmissionRecord{
		Scope:    Scope3,
		Category: src.Label(factors.DomainProcurement, key),
		Key:      key,
		Activity: spendEUR,
		Unit:     UnitEUR,
		Factor:   factor,
	}, spendEUR)
}

// CalculateBusinessTravel computes scope 3 travel emissions:
// distanceKM * factor / 1000, with the factor selected by mode.
func CalculateBusinessTravel(src FactorSource, distanceKM float64, mode factors.TravelMode) (EmissionRecord, error) {
	if err := checkQuantity("distance_km", distanceKM); err != nil {
		return EmissionRecord{}, err
	}

	key, factor, err := resolve(src, factors.DomainTravel, string(mode))
	if err != nil {
		return EmissionRecord{}, err
	}

	return newRecord(EmissionRecord{
		Scope:    Scope3,
		Category: "Business travel: " + src.Label(factors.DomainTravel, key),
		Key:      key,
		Activity: distanceKM,
		Unit:     UnitKM,
		Factor:   factor,
	}, distanceKM)
}

// checkQuantity rejects negative and non-finite amounts.
func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidQuantity, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %v", ErrInvalidQuantity, name, v)
	}
	return nil
}

func resolve(src FactorSource, domain factors.Domain, raw string) (string, factors.EmissionFactor, error) {
	key, err := src.Resolve(domain, raw)
	if err != nil {
		return "", factors.EmissionFactor{}, err
	}
	factor, err := src.Lookup(domain, key)
	if err != nil {
		return "", factors.EmissionFactor{}, err
	}
	return key, factor, nil
}

func electricityCategory(src FactorSource, key string, method ElectricityMethod) string {
	return fmt.Sprintf("Electricity (%s, %s)", src.Label(factors.DomainElectricity, key), method.Label())
}

// newRecord stamps an ID on rec and sets its emissions from the charged
// quantity. The factor is in kg per unit; the record is in tonnes.
func newRecord(rec EmissionRecord, charged float64) (EmissionRecord, error) {
	emissions := charged * rec.Factor.Value / KgPerTonne
	if math.IsInf(emissions, 0) || math.IsNaN(emissions) {
		return EmissionRecord{}, ErrCalculationOverflow
	}

	rec.ID = ulid.Make().String()
	rec.EmissionsTonnes = emissions
	return rec, nil
}
