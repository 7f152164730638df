package engine

import "mileage/core/types"

// Conversion factors used when a region rates in miles per gallon but
// records distance or fuel in metric units.
const (
	MilesPerKilometer = 0.621371
	GallonsPerLiter   = 0.264172
)

// Efficiency computes the efficiency figure for a trip in profile's unit.
// Electric trips always report distance per kWh.
func Efficiency(distance, fuel float64, fuelType types.FuelType, profile types.Profile) float64 {
	if fuelType == types.FuelElectric {
		return distance / fuel
	}

	switch profile.EfficiencyUnit {
	case types.EfficiencyMPG:
		miles := distance
		if profile.DistanceUnit != types.DistanceMiles {
			miles *= MilesPerKilometer
		}
		gallons := fuel
		if profile.FuelUnit != types.FuelGallons {
			gallons *= GallonsPerLiter
		}
		return miles / gallons
	case types.EfficiencyLitersPer100Km:
		return (fuel / distance) * 100
	default:
		return distance / fuel
	}
}
