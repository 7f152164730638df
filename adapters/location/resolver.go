package location

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mileage/core/catalog"
	"mileage/core/types"
	"mileage/internal/config"
	"mileage/internal/logging"
)

// DefaultTimeout bounds each lookup step when none is configured
const DefaultTimeout = 10 * time.Second

// Resolver runs the lookup chain: reverse geocoding when coordinates are
// known, then IP lookup, then the catalog default. Each step has its own
// timeout and a failed step falls through to the next one.
type Resolver struct {
	catalog  *catalog.Catalog
	geocoder ReverseGeocoder
	ip       IPLocator
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a resolver. geocoder and ip may be nil to skip
// their steps.
func NewResolver(cat *catalog.Catalog, geocoder ReverseGeocoder, ip IPLocator, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		catalog:  cat,
		geocoder: geocoder,
		ip:       ip,
		timeout:  timeout,
		logger:   logging.OrNop(logger).Named("locate"),
	}
}

// NewResolverFromConfig wires the BigDataCloud and ipapi clients from cfg.
// Empty endpoints disable the corresponding step.
func NewResolverFromConfig(cfg config.LocateConfig, cat *catalog.Catalog, client *http.Client, logger *zap.Logger) *Resolver {
	var geocoder ReverseGeocoder
	if cfg.ReverseGeocodeURL != "" {
		geocoder = &BigDataCloud{Endpoint: cfg.ReverseGeocodeURL, Client: client}
	}
	var ip IPLocator
	if cfg.IPLookupURL != "" {
		ip = &IPAPI{Endpoint: cfg.IPLookupURL, Client: client}
	}
	return NewResolver(cat, geocoder, ip, cfg.Timeout(), logger)
}

// Locate implements engine.Locator. It never fails.
func (r *Resolver) Locate(ctx context.Context, coords *types.Coordinates) types.Location {
	if coords != nil && r.geocoder != nil {
		code, err := r.step(ctx, func(ctx context.Context) (string, error) {
			return r.geocoder.CountryAt(ctx, coords.Latitude, coords.Longitude)
		})
		if err == nil {
			return r.resolved(code, types.SourceGeolocation, coords)
		}
		r.logger.Warn("reverse geocoding failed, trying ip lookup", zap.Error(err))
	}

	if r.ip != nil {
		code, err := r.step(ctx, r.ip.Country)
		if err == nil {
			return r.resolved(code, types.SourceIP, nil)
		}
		r.logger.Warn("ip lookup failed, using default region", zap.Error(err))
	}

	return types.Location{
		Profile:     r.catalog.Default(),
		Source:      types.SourceDefault,
		Coordinates: coords,
	}
}

// ForCode resolves an explicitly chosen country code
func (r *Resolver) ForCode(code string) types.Location {
	return r.resolved(code, types.SourceExplicit, nil)
}

func (r *Resolver) step(ctx context.Context, lookup func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return lookup(ctx)
}

func (r *Resolver) resolved(code string, source types.LocationSource, coords *types.Coordinates) types.Location {
	if canonical, ok := catalog.Canonical(code); ok {
		code = canonical
	}
	profile, known := r.catalog.Get(code)
	if !known {
		profile = r.catalog.Default()
		r.logger.Debug("country not in catalog, using default profile",
			zap.String("country", code), zap.String("default", profile.Code))
	} else {
		r.logger.Debug("region resolved", zap.String("country", code), zap.String("source", string(source)))
	}
	return types.Location{
		CountryCode: code,
		Profile:     profile,
		Source:      source,
		Coordinates: coords,
	}
}
