// Package api - Request execution for the HTTP API
// The handler resolves the region and delegates every number to the
// engine; it contains no calculation logic.
package api

import (
	"context"

	"go.uber.org/zap"

	"mileage/adapters/pricing"
	"mileage/core/catalog"
	"mileage/core/engine"
	"mileage/core/types"
	"mileage/internal/logging"
)

// Handler executes API requests
type Handler struct {
	engine     *engine.Engine
	catalog    *catalog.Catalog
	locator    engine.Locator
	prices     pricing.Source
	batchLimit int
	logger     *zap.Logger
}

// NewHandler creates a new handler. locator and prices may be nil.
func NewHandler(eng *engine.Engine, cat *catalog.Catalog, locator engine.Locator, prices pricing.Source, batchLimit int, logger *zap.Logger) *Handler {
	return &Handler{
		engine:     eng,
		catalog:    cat,
		locator:    locator,
		prices:     prices,
		batchLimit: batchLimit,
		logger:     logging.OrNop(logger),
	}
}

func (h *Handler) resolve(ctx context.Context, region string, coords *types.Coordinates) types.Location {
	if region != "" {
		p := h.catalog.Lookup(region)
		return types.Location{CountryCode: p.Code, Profile: p, Source: types.SourceExplicit}
	}
	if coords != nil && h.locator != nil {
		return h.locator.Locate(ctx, coords)
	}
	return types.Location{Profile: h.catalog.Default(), Source: types.SourceDefault}
}

// locate runs the locator chain. Without coordinates only the IP step runs.
func (h *Handler) locate(ctx context.Context, coords *types.Coordinates) types.Location {
	if h.locator == nil {
		return types.Location{Profile: h.catalog.Default(), Source: types.SourceDefault, Coordinates: coords}
	}
	return h.locator.Locate(ctx, coords)
}

func (h *Handler) calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	loc := h.resolve(ctx, req.Region, req.Coordinates)
	input := req.TripInput

	if req.UseSuggestedPrice && h.prices != nil {
		code := loc.CountryCode
		if code == "" {
			code = loc.Profile.Code
		}
		quote, err := h.prices.FetchPrice(ctx, code)
		if err != nil {
			return nil, err
		}
		input.UnitPrice = quote.Price.InexactFloat64()
	}

	result, err := h.engine.Compute(input, loc.Profile)
	if err != nil {
		return nil, err
	}

	return &CalculateResponse{
		Region: loc.Profile,
		Source: loc.Source,
		Input:  input,
		Result: result,
		Labels: types.LabelsFor(loc.Profile, input.FuelType),
	}, nil
}

func (h *Handler) calculateBatch(ctx context.Context, req *BatchRequest) (*BatchResponse, error) {
	profile := h.catalog.Lookup(req.Region)

	items, err := h.engine.ComputeBatch(ctx, req.Trips, profile, h.batchLimit)
	if err != nil {
		return nil, err
	}

	resp := &BatchResponse{
		Region: profile,
		Trips:  make([]BatchEntry, 0, len(items)),
	}
	for _, it := range items {
		entry := BatchEntry{Index: it.Index, Result: it.Result}
		if it.Err != nil {
			body := errorBody(it.Err)
			entry.Error = &body
			resp.Rejected++
		} else {
			resp.Computed++
		}
		resp.Trips = append(resp.Trips, entry)
	}
	return resp, nil
}
