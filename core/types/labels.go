package types

import "fmt"

// Labels holds the unit labels a form needs for one region and fuel type
type Labels struct {
	Distance        string `json:"distance"`
	Fuel            string `json:"fuel"`
	Price           string `json:"price"`
	FuelUnit        string `json:"fuel_unit"`
	PriceUnit       string `json:"price_unit"`
	Efficiency      string `json:"efficiency"`
	CostPerDistance string `json:"cost_per_distance"`
	TotalCost       string `json:"total_cost"`
}

// LabelsFor returns the input and result labels for profile p and fuel type f.
// Electric trips are entered in kWh and CNG trips in kg.
func LabelsFor(p Profile, f FuelType) Labels {
	fuelUnit := string(p.FuelUnit)
	fuelText := "Fuel Consumed"
	priceUnit := p.FuelUnit.Singular()
	priceText := "Fuel Price per"

	switch f.OrDefault() {
	case FuelElectric:
		fuelUnit, fuelText = "kWh", "Energy Consumed"
		priceUnit, priceText = "kWh", "Electricity Price per"
	case FuelCNG:
		fuelUnit, fuelText = "kg", "CNG Consumed"
		priceUnit, priceText = "kg", "CNG Price per"
	}

	return Labels{
		Distance:        fmt.Sprintf("Distance Traveled (%s)", p.DistanceUnit),
		Fuel:            fmt.Sprintf("%s (%s)", fuelText, fuelUnit),
		Price:           fmt.Sprintf("%s %s (%s)", priceText, priceUnit, p.Currency),
		FuelUnit:        fuelUnit,
		PriceUnit:       priceUnit,
		Efficiency:      EfficiencyLabel(p, f),
		CostPerDistance: p.CostPerDistanceUnit,
		TotalCost:       p.Currency,
	}
}

// EfficiencyLabel is the unit shown next to a computed efficiency.
func EfficiencyLabel(p Profile, f FuelType) string {
	if f == FuelElectric {
		return string(p.DistanceUnit) + "/kWh"
	}
	return string(p.EfficiencyUnit)
}
