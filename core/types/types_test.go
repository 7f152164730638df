package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func germany() Profile {
	return Profile{
		Code:                "DE",
		Name:                "Germany",
		DistanceUnit:        DistanceKilometers,
		FuelUnit:            FuelLiters,
		Currency:            "€",
		EfficiencyUnit:      EfficiencyLitersPer100Km,
		CostPerDistanceUnit: "€/km",
		Thresholds:          Thresholds{Excellent: 5, Good: 7, Average: 9, Poor: 12},
	}
}

func TestThresholdsMonotonic(t *testing.T) {
	assert.True(t, Thresholds{35, 25, 20, 15}.Monotonic(true))
	assert.False(t, Thresholds{35, 25, 25, 15}.Monotonic(true))
	assert.True(t, Thresholds{5, 7, 9, 12}.Monotonic(false))
	assert.False(t, Thresholds{5, 7, 9, 12}.Monotonic(true))
}

func TestProfileValidate(t *testing.T) {
	p := germany()
	require.NoError(t, p.Validate())

	bad := p
	bad.EfficiencyUnit = EfficiencyKmPerLiter
	assert.Error(t, bad.Validate(), "ascending thresholds are wrong for km/l")

	bad = p
	bad.Code = "DEU"
	assert.Error(t, bad.Validate())

	bad = p
	bad.DistanceUnit = "furlongs"
	assert.Error(t, bad.Validate())

	bad = p
	bad.Thresholds.Excellent = 0
	assert.Error(t, bad.Validate())
}

func TestEfficiencyUnitDirection(t *testing.T) {
	assert.True(t, EfficiencyKmPerLiter.HigherIsBetter())
	assert.True(t, EfficiencyMPG.HigherIsBetter())
	assert.False(t, EfficiencyLitersPer100Km.HigherIsBetter())
}

func TestTierOrderingAndText(t *testing.T) {
	assert.Less(t, int(TierVeryPoor), int(TierPoor))
	assert.Less(t, int(TierGood), int(TierExcellent))
	assert.Equal(t, "Very Poor", TierVeryPoor.String())
	assert.Equal(t, "#FFD700", NewRating(TierAverage).Color)

	data, err := json.Marshal(NewRating(TierGood))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"Good","color":"#00FF41"}`, string(data))
}

func TestFuelTypeKnown(t *testing.T) {
	assert.True(t, FuelCNG.Known())
	assert.False(t, FuelType("hydrogen").Known())
	assert.Equal(t, FuelPetrol, FuelType("").OrDefault())
}

func TestLabelsFor(t *testing.T) {
	us := Profile{
		Code: "US", Name: "United States",
		DistanceUnit: DistanceMiles, FuelUnit: FuelGallons,
		Currency: "$", EfficiencyUnit: EfficiencyMPG, CostPerDistanceUnit: "$/mile",
	}

	petrol := LabelsFor(us, FuelPetrol)
	assert.Equal(t, "Distance Traveled (miles)", petrol.Distance)
	assert.Equal(t, "Fuel Consumed (gallons)", petrol.Fuel)
	assert.Equal(t, "Fuel Price per Gallon ($)", petrol.Price)
	assert.Equal(t, "mpg", petrol.Efficiency)

	electric := LabelsFor(us, FuelElectric)
	assert.Equal(t, "Energy Consumed (kWh)", electric.Fuel)
	assert.Equal(t, "Electricity Price per kWh ($)", electric.Price)
	assert.Equal(t, "miles/kWh", electric.Efficiency)

	cng := LabelsFor(germany(), FuelCNG)
	assert.Equal(t, "CNG Consumed (kg)", cng.Fuel)
	assert.Equal(t, "CNG Price per kg (€)", cng.Price)
	assert.Equal(t, "l/100km", cng.Efficiency)
}
