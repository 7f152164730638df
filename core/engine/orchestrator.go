package engine

import (
	"context"

	"go.uber.org/zap"

	"mileage/core/types"
	"mileage/internal/logging"
)

// Locator resolves the caller's region. Implementations never fail: an
// unresolvable location yields the default profile.
type Locator interface {
	Locate(ctx context.Context, coords *types.Coordinates) types.Location
}

// PriceQuoter fetches the current fuel price for a country
type PriceQuoter interface {
	FetchPrice(ctx context.Context, countryCode string) (*types.PriceQuote, error)
}

// Session is the resolved context a form is rendered with
type Session struct {
	Location types.Location    `json:"location"`
	Price    *types.PriceQuote `json:"price,omitempty"`
	Labels   types.Labels      `json:"labels"`
}

// WithSuggestedPrice returns in with its unit price replaced by the
// session's quoted price. Without a quote in is returned unchanged.
func (s *Session) WithSuggestedPrice(in types.TripInput) types.TripInput {
	if s.Price != nil {
		in.UnitPrice = s.Price.Price.InexactFloat64()
	}
	return in
}

// Orchestrator runs the bootstrap sequence: resolve the region, then
// quote a price, then hand trips to the engine with the resolved profile.
type Orchestrator struct {
	engine  *Engine
	locator Locator
	prices  PriceQuoter
	logger  *zap.Logger
}

// NewOrchestrator creates an orchestrator. prices may be nil.
func NewOrchestrator(engine *Engine, locator Locator, prices PriceQuoter, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		engine:  engine,
		locator: locator,
		prices:  prices,
		logger:  logging.OrNop(logger),
	}
}

// Prepare resolves the region for coords and quotes the fuel price for
// the detected country. A failed price fetch leaves Price nil.
func (o *Orchestrator) Prepare(ctx context.Context, coords *types.Coordinates, fuelType types.FuelType) *Session {
	loc := o.locator.Locate(ctx, coords)
	session := &Session{
		Location: loc,
		Labels:   types.LabelsFor(loc.Profile, fuelType),
	}

	if o.prices == nil {
		return session
	}

	code := loc.CountryCode
	if code == "" {
		code = loc.Profile.Code
	}
	quote, err := o.prices.FetchPrice(ctx, code)
	if err != nil {
		o.logger.Warn("fuel price unavailable", zap.String("country", code), zap.Error(err))
		return session
	}
	session.Price = quote
	return session
}

// Calculate computes a trip with the session's profile
func (o *Orchestrator) Calculate(session *Session, input types.TripInput) (*types.Result, error) {
	return o.engine.Compute(input, session.Location.Profile)
}
