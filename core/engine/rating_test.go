package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mileage/core/catalog"
	"mileage/core/types"
)

func TestAdjustThresholds(t *testing.T) {
	base := types.Thresholds{Excellent: 20, Good: 15, Average: 10, Poor: 5}

	tests := []struct {
		fuel types.FuelType
		want types.Thresholds
	}{
		{types.FuelPetrol, base},
		{types.FuelType("hydrogen"), base},
		{types.FuelDiesel, types.Thresholds{Excellent: 26, Good: 18, Average: 11, Poor: 5}},
		{types.FuelElectric, types.Thresholds{Excellent: 40, Good: 27, Average: 15, Poor: 6}},
		{types.FuelHybrid, types.Thresholds{Excellent: 30, Good: 19.5, Average: 11, Poor: 5}},
		{types.FuelCNG, types.Thresholds{Excellent: 24, Good: 16.5, Average: 10, Poor: 4.5}},
	}

	for _, tt := range tests {
		t.Run(string(tt.fuel), func(t *testing.T) {
			got := AdjustThresholds(base, tt.fuel)
			want := tt.want.Values()
			for i, v := range got.Values() {
				assert.InDelta(t, want[i], v, tolerance)
			}
		})
	}
}

func TestRateBoundariesAreInclusive(t *testing.T) {
	higher := types.Thresholds{Excellent: 35, Good: 25, Average: 20, Poor: 15}
	assert.Equal(t, types.TierExcellent, Rate(35, higher, types.EfficiencyMPG))
	assert.Equal(t, types.TierGood, Rate(25, higher, types.EfficiencyMPG))
	assert.Equal(t, types.TierAverage, Rate(24.99, higher, types.EfficiencyMPG))
	assert.Equal(t, types.TierPoor, Rate(15, higher, types.EfficiencyMPG))
	assert.Equal(t, types.TierVeryPoor, Rate(14.99, higher, types.EfficiencyMPG))

	lower := types.Thresholds{Excellent: 5, Good: 7, Average: 9, Poor: 12}
	assert.Equal(t, types.TierExcellent, Rate(5, lower, types.EfficiencyLitersPer100Km))
	assert.Equal(t, types.TierGood, Rate(5.01, lower, types.EfficiencyLitersPer100Km))
	assert.Equal(t, types.TierAverage, Rate(9, lower, types.EfficiencyLitersPer100Km))
	assert.Equal(t, types.TierPoor, Rate(12, lower, types.EfficiencyLitersPer100Km))
	assert.Equal(t, types.TierVeryPoor, Rate(12.01, lower, types.EfficiencyLitersPer100Km))
}

func TestRateIsMonotonic(t *testing.T) {
	for _, p := range catalog.BuiltinProfiles() {
		for _, fuel := range types.FuelTypes() {
			thresholds := AdjustThresholds(p.Thresholds, fuel)
			prev := Rate(0.01, thresholds, p.EfficiencyUnit)
			for eff := 0.01; eff < 200; eff += 0.37 {
				tier := Rate(eff, thresholds, p.EfficiencyUnit)
				if p.EfficiencyUnit.HigherIsBetter() {
					assert.GreaterOrEqual(t, int(tier), int(prev), "%s/%s at %v", p.Code, fuel, eff)
				} else {
					assert.LessOrEqual(t, int(tier), int(prev), "%s/%s at %v", p.Code, fuel, eff)
				}
				prev = tier
			}
		}
	}
}
