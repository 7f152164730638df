package engine

import "mileage/core/types"

// fuelMultipliers scales base thresholds per fuel type, in
// excellent, good, average, poor order. Unlisted fuel types use the
// base thresholds unchanged.
var fuelMultipliers = map[types.FuelType][4]float64{
	types.FuelDiesel:   {1.3, 1.2, 1.1, 1.0},
	types.FuelElectric: {2.0, 1.8, 1.5, 1.2},
	types.FuelHybrid:   {1.5, 1.3, 1.1, 1.0},
	types.FuelCNG:      {1.2, 1.1, 1.0, 0.9},
}

// AdjustThresholds returns base scaled for fuelType
func AdjustThresholds(base types.Thresholds, fuelType types.FuelType) types.Thresholds {
	m, ok := fuelMultipliers[fuelType]
	if !ok {
		return base
	}
	return types.Thresholds{
		Excellent: base.Excellent * m[0],
		Good:      base.Good * m[1],
		Average:   base.Average * m[2],
		Poor:      base.Poor * m[3],
	}
}

var tiersBestFirst = [4]types.Tier{
	types.TierExcellent,
	types.TierGood,
	types.TierAverage,
	types.TierPoor,
}

// Rate classifies efficiency against thresholds. Boundaries are inclusive:
// for l/100km a value at or below a bound earns that tier, for the other
// units a value at or above it does.
func Rate(efficiency float64, thresholds types.Thresholds, unit types.EfficiencyUnit) types.Tier {
	higher := unit.HigherIsBetter()
	for i, bound := range thresholds.Values() {
		if higher && efficiency >= bound {
			return tiersBestFirst[i]
		}
		if !higher && efficiency <= bound {
			return tiersBestFirst[i]
		}
	}
	return types.TierVeryPoor
}
