package catalog

import "mileage/core/types"

const priceFeedBase = "https://api.fuelpriceapi.com/v1/prices/"

var (
	metricPerLiter = types.Thresholds{Excellent: 20, Good: 15, Average: 10, Poor: 5}
	europeanPer100 = types.Thresholds{Excellent: 5, Good: 7, Average: 9, Poor: 12}
)

// BuiltinProfiles returns the profiles shipped with the calculator
func BuiltinProfiles() []types.Profile {
	return []types.Profile{
		{
			Code:                "IN",
			Name:                "India",
			DistanceUnit:        types.DistanceKilometers,
			FuelUnit:            types.FuelLiters,
			Currency:            "₹",
			EfficiencyUnit:      types.EfficiencyKmPerLiter,
			CostPerDistanceUnit: "₹/km",
			Thresholds:          metricPerLiter,
			PriceSource:         priceFeedBase + "IN",
		},
		{
			Code:                "US",
			Name:                "United States",
			DistanceUnit:        types.DistanceMiles,
			FuelUnit:            types.FuelGallons,
			Currency:            "$",
			EfficiencyUnit:      types.EfficiencyMPG,
			CostPerDistanceUnit: "$/mile",
			Thresholds:          types.Thresholds{Excellent: 35, Good: 25, Average: 20, Poor: 15},
			PriceSource:         priceFeedBase + "US",
		},
		{
			// UK fuel is sold by the liter but rated in miles per gallon
			Code:                "GB",
			Name:                "United Kingdom",
			DistanceUnit:        types.DistanceMiles,
			FuelUnit:            types.FuelLiters,
			Currency:            "£",
			EfficiencyUnit:      types.EfficiencyMPG,
			CostPerDistanceUnit: "£/mile",
			Thresholds:          types.Thresholds{Excellent: 50, Good: 40, Average: 30, Poor: 20},
			PriceSource:         priceFeedBase + "GB",
		},
		{
			Code:                "DE",
			Name:                "Germany",
			DistanceUnit:        types.DistanceKilometers,
			FuelUnit:            types.FuelLiters,
			Currency:            "€",
			EfficiencyUnit:      types.EfficiencyLitersPer100Km,
			CostPerDistanceUnit: "€/km",
			Thresholds:          europeanPer100,
			PriceSource:         priceFeedBase + "DE",
		},
		{
			Code:                "FR",
			Name:                "France",
			DistanceUnit:        types.DistanceKilometers,
			FuelUnit:            types.FuelLiters,
			Currency:            "€",
			EfficiencyUnit:      types.EfficiencyLitersPer100Km,
			CostPerDistanceUnit: "€/km",
			Thresholds:          europeanPer100,
			PriceSource:         priceFeedBase + "FR",
		},
		{
			Code:                "AU",
			Name:                "Australia",
			DistanceUnit:        types.DistanceKilometers,
			FuelUnit:            types.FuelLiters,
			Currency:            "A$",
			EfficiencyUnit:      types.EfficiencyKmPerLiter,
			CostPerDistanceUnit: "A$/km",
			Thresholds:          metricPerLiter,
			PriceSource:         priceFeedBase + "AU",
		},
		{
			Code:                "CA",
			Name:                "Canada",
			DistanceUnit:        types.DistanceKilometers,
			FuelUnit:            types.FuelLiters,
			Currency:            "C$",
			EfficiencyUnit:      types.EfficiencyKmPerLiter,
			CostPerDistanceUnit: "C$/km",
			Thresholds:          metricPerLiter,
			PriceSource:         priceFeedBase + "CA",
		},
	}
}

// Builtin returns the catalog of built-in profiles with India as default
func Builtin() *Catalog {
	return MustNew(BuiltinProfiles(), DefaultCode)
}
