package engine

import (
	"math"

	"go.uber.org/multierr"

	"mileage/core/types"
	apperrors "mileage/internal/errors"
)

// Input field identifiers carried by validation errors
const (
	FieldDistance     = "distance"
	FieldFuelConsumed = "fuel_consumed"
	FieldUnitPrice    = "unit_price"
)

// Validate checks a trip against the input invariants. Every violated
// field is reported; the result matches apperrors.TypeValidation.
func Validate(in types.TripInput, opts Options) error {
	err := multierr.Combine(
		positive(FieldDistance, in.Distance),
		positive(FieldFuelConsumed, in.FuelConsumed),
		positive(FieldUnitPrice, in.UnitPrice),
	)
	if err != nil {
		return err
	}

	if opts.EnforceFuelWithinDistance && in.FuelConsumed > in.Distance {
		return apperrors.Validation(FieldFuelConsumed, "fuel consumption cannot be greater than distance traveled")
	}
	return nil
}

// ValidationErrors flattens err into its individual field errors
func ValidationErrors(err error) []*apperrors.Error {
	var out []*apperrors.Error
	for _, e := range multierr.Errors(err) {
		if ae, ok := apperrors.As(e); ok && ae.Type == apperrors.TypeValidation {
			out = append(out, ae)
		}
	}
	return out
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.Validation(field, "must be a finite number")
	}
	if v <= 0 {
		return apperrors.Validation(field, "must be greater than 0")
	}
	return nil
}
