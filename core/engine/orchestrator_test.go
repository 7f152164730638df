package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mileage/core/catalog"
	"mileage/core/types"
)

type fixedLocator struct {
	loc  types.Location
	seen *types.Coordinates
}

func (f *fixedLocator) Locate(_ context.Context, coords *types.Coordinates) types.Location {
	f.seen = coords
	return f.loc
}

type quoterFunc func(ctx context.Context, code string) (*types.PriceQuote, error)

func (q quoterFunc) FetchPrice(ctx context.Context, code string) (*types.PriceQuote, error) {
	return q(ctx, code)
}

func TestPrepareQuotesDetectedCountry(t *testing.T) {
	cat := catalog.Builtin()
	loc := &fixedLocator{loc: types.Location{CountryCode: "JP", Profile: cat.Default(), Source: types.SourceIP}}

	var quoted string
	prices := quoterFunc(func(_ context.Context, code string) (*types.PriceQuote, error) {
		quoted = code
		return &types.PriceQuote{CountryCode: code, Price: decimal.RequireFromString("95.50")}, nil
	})

	o := NewOrchestrator(newEngine(), loc, prices, nil)
	coords := &types.Coordinates{Latitude: 35.68, Longitude: 139.69}
	s := o.Prepare(context.Background(), coords, types.FuelCNG)

	assert.Same(t, coords, loc.seen)
	assert.Equal(t, "JP", quoted, "price uses the reported country, not the fallback profile")
	require.NotNil(t, s.Price)
	assert.Equal(t, "CNG Consumed (kg)", s.Labels.Fuel)

	in := s.WithSuggestedPrice(types.TripInput{Distance: 100, FuelConsumed: 5, FuelType: types.FuelCNG})
	assert.Equal(t, 95.5, in.UnitPrice)

	res, err := o.Calculate(s, in)
	require.NoError(t, err)
	assert.True(t, res.TotalCost.Equal(decimal.RequireFromString("477.5")))
}

func TestPrepareSurvivesPriceFailure(t *testing.T) {
	cat := catalog.Builtin()
	loc := &fixedLocator{loc: types.Location{Profile: cat.Lookup("DE"), Source: types.SourceDefault}}

	var quoted string
	prices := quoterFunc(func(_ context.Context, code string) (*types.PriceQuote, error) {
		quoted = code
		return nil, errors.New("feed down")
	})

	s := NewOrchestrator(newEngine(), loc, prices, nil).Prepare(context.Background(), nil, types.FuelPetrol)
	assert.Equal(t, "DE", quoted, "profile code is used when no country was reported")
	assert.Nil(t, s.Price)

	in := types.TripInput{Distance: 100, FuelConsumed: 6, UnitPrice: 1.7}
	assert.Equal(t, in, s.WithSuggestedPrice(in))
}

func TestPrepareWithoutPriceSource(t *testing.T) {
	loc := &fixedLocator{loc: types.Location{Profile: catalog.Builtin().Default(), Source: types.SourceDefault}}
	s := NewOrchestrator(newEngine(), loc, nil, nil).Prepare(context.Background(), nil, types.FuelElectric)
	assert.Nil(t, s.Price)
	assert.Equal(t, "km/kWh", s.Labels.Efficiency)
}
