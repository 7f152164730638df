package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FuelType is the propulsion selector of a trip
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelCNG      FuelType = "cng"
)

// FuelTypes lists the known fuel types in display order
func FuelTypes() []FuelType {
	return []FuelType{FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid, FuelCNG}
}

// Known reports whether f is one of the listed fuel types.
// Unlisted values are still accepted and rated against the base thresholds.
func (f FuelType) Known() bool {
	for _, k := range FuelTypes() {
		if f == k {
			return true
		}
	}
	return false
}

// OrDefault returns petrol for the empty fuel type
func (f FuelType) OrDefault() FuelType {
	if f == "" {
		return FuelPetrol
	}
	return f
}

// TripInput is a single calculation request
type TripInput struct {
	Distance     float64  `json:"distance" yaml:"distance"`
	FuelConsumed float64  `json:"fuel_consumed" yaml:"fuel_consumed"`
	UnitPrice    float64  `json:"unit_price" yaml:"unit_price"`
	FuelType     FuelType `json:"fuel_type" yaml:"fuel_type"`
}

// Tier is a qualitative efficiency bucket. Higher values are better.
type Tier int

const (
	TierVeryPoor Tier = iota
	TierPoor
	TierAverage
	TierGood
	TierExcellent
)

// String returns the display text of the tier
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierAverage:
		return "Average"
	case TierPoor:
		return "Poor"
	case TierVeryPoor:
		return "Very Poor"
	default:
		return "unknown"
	}
}

// Color returns the display color hint of the tier
func (t Tier) Color() string {
	switch t {
	case TierExcellent:
		return "#39FF14"
	case TierGood:
		return "#00FF41"
	case TierAverage:
		return "#FFD700"
	case TierPoor:
		return "#FF6B6B"
	default:
		return "#FF4444"
	}
}

// MarshalJSON encodes the tier as its display text
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tier from its display text
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseTier(s)
	if !ok {
		return fmt.Errorf("unknown rating tier %q", s)
	}
	*t = parsed
	return nil
}

// ParseTier maps display text back to a tier
func ParseTier(s string) (Tier, bool) {
	for t := TierVeryPoor; t <= TierExcellent; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return TierVeryPoor, false
}

// Rating is a tier plus its cosmetic color hint
type Rating struct {
	Tier  Tier   `json:"tier"`
	Color string `json:"color"`
}

// NewRating builds the rating for a tier
func NewRating(t Tier) Rating {
	return Rating{Tier: t, Color: t.Color()}
}

// Result is the output of one mileage calculation
type Result struct {
	Efficiency      float64         `json:"efficiency"`
	EfficiencyUnit  string          `json:"efficiency_unit"`
	CostPerDistance decimal.Decimal `json:"cost_per_distance"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Rating          Rating          `json:"rating"`
	FuelType        FuelType        `json:"fuel_type"`
	Thresholds      Thresholds      `json:"thresholds"`
}
