// Package engine provides the mileage calculation engine.
// The engine is a pure transform from a trip and a region profile to a
// result; the CLI and HTTP API are thin wrappers around it.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mileage/core/types"
	"mileage/internal/logging"
)

// Options configures the engine
type Options struct {
	// EnforceFuelWithinDistance rejects trips whose fuel amount exceeds
	// their distance
	EnforceFuelWithinDistance bool
}

// DefaultOptions returns the default engine options
func DefaultOptions() Options {
	return Options{
		EnforceFuelWithinDistance: true,
	}
}

// Engine computes mileage results. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// New creates an engine
func New(opts Options, logger *zap.Logger) *Engine {
	return &Engine{
		opts:   opts,
		logger: logging.OrNop(logger),
	}
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.opts
}

// Compute validates input and calculates efficiency, cost and rating for
// profile. Invalid input is rejected with a validation error and no
// partial result.
func (e *Engine) Compute(input types.TripInput, profile types.Profile) (*types.Result, error) {
	if err := Validate(input, e.opts); err != nil {
		e.logger.Debug("trip rejected", zap.Error(err))
		return nil, err
	}

	fuelType := input.FuelType.OrDefault()
	efficiency := Efficiency(input.Distance, input.FuelConsumed, fuelType, profile)

	totalCost := decimal.NewFromFloat(input.FuelConsumed).Mul(decimal.NewFromFloat(input.UnitPrice))
	costPerDistance := totalCost.Div(decimal.NewFromFloat(input.Distance))

	thresholds := AdjustThresholds(profile.Thresholds, fuelType)
	tier := Rate(efficiency, thresholds, profile.EfficiencyUnit)

	e.logger.Debug("trip computed",
		zap.String("region", profile.Code),
		zap.String("fuel_type", string(fuelType)),
		zap.Float64("efficiency", efficiency),
		zap.Stringer("tier", tier),
	)

	return &types.Result{
		Efficiency:      efficiency,
		EfficiencyUnit:  types.EfficiencyLabel(profile, fuelType),
		CostPerDistance: costPerDistance,
		TotalCost:       totalCost,
		Rating:          types.NewRating(tier),
		FuelType:        fuelType,
		Thresholds:      thresholds,
	}, nil
}
