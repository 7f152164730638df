// Package types defines the core domain types shared by the catalog,
// the mileage engine and their collaborators.
package types

import "fmt"

// DistanceUnit is the unit a region measures distance in
type DistanceUnit string

const (
	DistanceKilometers DistanceUnit = "km"
	DistanceMiles      DistanceUnit = "miles"
)

// Valid reports whether u is a known distance unit
func (u DistanceUnit) Valid() bool {
	return u == DistanceKilometers || u == DistanceMiles
}

// FuelUnit is the baseline liquid-fuel unit of a region
type FuelUnit string

const (
	FuelLiters  FuelUnit = "liters"
	FuelGallons FuelUnit = "gallons"
)

// Valid reports whether u is a known fuel unit
func (u FuelUnit) Valid() bool {
	return u == FuelLiters || u == FuelGallons
}

// Singular returns the capitalised singular form used in price labels.
func (u FuelUnit) Singular() string {
	if u == FuelGallons {
		return "Gallon"
	}
	return "Liter"
}

// EfficiencyUnit selects both the efficiency formula and the rating direction
type EfficiencyUnit string

const (
	// EfficiencyKmPerLiter is distance per volume (km/l)
	EfficiencyKmPerLiter EfficiencyUnit = "km/l"
	// EfficiencyMPG is distance per imperial volume (miles per gallon)
	EfficiencyMPG EfficiencyUnit = "mpg"
	// EfficiencyLitersPer100Km is volume per 100 distance units
	EfficiencyLitersPer100Km EfficiencyUnit = "l/100km"
)

// Valid reports whether u is a known efficiency unit
func (u EfficiencyUnit) Valid() bool {
	switch u {
	case EfficiencyKmPerLiter, EfficiencyMPG, EfficiencyLitersPer100Km:
		return true
	default:
		return false
	}
}

// HigherIsBetter reports the rating direction for the unit.
// Only volume-per-100-distance ranks lower values as better.
func (u EfficiencyUnit) HigherIsBetter() bool {
	return u != EfficiencyLitersPer100Km
}

// Thresholds is the four-tier efficiency boundary table, ordered best to worst
type Thresholds struct {
	Excellent float64 `json:"excellent" yaml:"excellent"`
	Good      float64 `json:"good" yaml:"good"`
	Average   float64 `json:"average" yaml:"average"`
	Poor      float64 `json:"poor" yaml:"poor"`
}

// Values returns the boundaries in best-to-worst order
func (t Thresholds) Values() [4]float64 {
	return [4]float64{t.Excellent, t.Good, t.Average, t.Poor}
}

// Monotonic reports whether the boundaries strictly worsen from Excellent to Poor.
func (t Thresholds) Monotonic(higherIsBetter bool) bool {
	v := t.Values()
	for i := 1; i < len(v); i++ {
		if higherIsBetter && !(v[i-1] > v[i]) {
			return false
		}
		if !higherIsBetter && !(v[i-1] < v[i]) {
			return false
		}
	}
	return true
}

// Profile is the immutable set of units, currency and thresholds for a country
type Profile struct {
	Code                string         `json:"code" yaml:"code"`
	Name                string         `json:"name" yaml:"name"`
	DistanceUnit        DistanceUnit   `json:"distance_unit" yaml:"distance_unit"`
	FuelUnit            FuelUnit       `json:"fuel_unit" yaml:"fuel_unit"`
	Currency            string         `json:"currency" yaml:"currency"`
	EfficiencyUnit      EfficiencyUnit `json:"efficiency_unit" yaml:"efficiency_unit"`
	CostPerDistanceUnit string         `json:"cost_per_distance_unit" yaml:"cost_per_distance_unit"`
	Thresholds          Thresholds     `json:"thresholds" yaml:"thresholds"`
	PriceSource         string         `json:"price_source,omitempty" yaml:"price_source,omitempty"`
}

// Validate checks the profile invariants
func (p Profile) Validate() error {
	if len(p.Code) != 2 {
		return fmt.Errorf("code %q is not a two-letter country code", p.Code)
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !p.DistanceUnit.Valid() {
		return fmt.Errorf("unknown distance unit %q", p.DistanceUnit)
	}
	if !p.FuelUnit.Valid() {
		return fmt.Errorf("unknown fuel unit %q", p.FuelUnit)
	}
	if !p.EfficiencyUnit.Valid() {
		return fmt.Errorf("unknown efficiency unit %q", p.EfficiencyUnit)
	}
	for _, v := range p.Thresholds.Values() {
		if v <= 0 {
			return fmt.Errorf("thresholds must be positive, got %v", p.Thresholds.Values())
		}
	}
	if !p.Thresholds.Monotonic(p.EfficiencyUnit.HigherIsBetter()) {
		return fmt.Errorf("thresholds %v are not strictly ordered for %s", p.Thresholds.Values(), p.EfficiencyUnit)
	}
	return nil
}
