// Package pricing provides pluggable fuel price sources.
// Every source answers the same question: the current fuel price for a
// country. Sources compose: a chain tries each in turn, a caching wrapper
// remembers quotes, a logging wrapper reports latency and failures.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mileage/core/catalog"
	"mileage/core/types"
	"mileage/internal/config"
	apperrors "mileage/internal/errors"
	"mileage/internal/logging"
)

// Source is the unified fuel price interface
type Source interface {
	// Name identifies the source in quotes and logs
	Name() string

	// FetchPrice returns the current price for a country code
	FetchPrice(ctx context.Context, countryCode string) (*types.PriceQuote, error)
}

// StaticSource quotes from a fixed per-country table
type StaticSource struct {
	prices   map[string]decimal.Decimal
	fallback decimal.Decimal
	now      func() time.Time
}

// DefaultPrices is the reference price table, in each region's currency
// per liter (per gallon for the US)
func DefaultPrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"IN": decimal.RequireFromString("95.50"),
		"US": decimal.RequireFromString("3.50"),
		"GB": decimal.RequireFromString("1.45"),
		"DE": decimal.RequireFromString("1.65"),
		"FR": decimal.RequireFromString("1.70"),
		"AU": decimal.RequireFromString("1.80"),
		"CA": decimal.RequireFromString("1.40"),
	}
}

// NewStaticSource creates a table source. A zero fallback makes unlisted
// countries an error instead of a fallback quote.
func NewStaticSource(prices map[string]decimal.Decimal, fallback decimal.Decimal) *StaticSource {
	return &StaticSource{
		prices:   prices,
		fallback: fallback,
		now:      time.Now,
	}
}

// Name implements Source
func (s *StaticSource) Name() string {
	return "static"
}

// FetchPrice implements Source
func (s *StaticSource) FetchPrice(_ context.Context, countryCode string) (*types.PriceQuote, error) {
	code, ok := catalog.Canonical(countryCode)
	if !ok {
		code = countryCode
	}
	price, ok := s.prices[code]
	if !ok {
		if s.fallback.IsZero() {
			return nil, apperrors.NotFound("fuel price", countryCode)
		}
		price = s.fallback
	}
	return &types.PriceQuote{
		CountryCode: code,
		Price:       price,
		Source:      s.Name(),
		FetchedAt:   s.now(),
	}, nil
}

// HTTPSource fetches prices from the feed named in each region profile.
// The feed answers with a JSON object holding a "price" field.
type HTTPSource struct {
	catalog *catalog.Catalog
	client  *http.Client
	timeout time.Duration
}

// NewHTTPSource creates a feed-backed source
func NewHTTPSource(cat *catalog.Catalog, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{catalog: cat, client: client, timeout: timeout}
}

// Name implements Source
func (h *HTTPSource) Name() string {
	return "http"
}

type feedResponse struct {
	Price decimal.Decimal `json:"price"`
}

// FetchPrice implements Source
func (h *HTTPSource) FetchPrice(ctx context.Context, countryCode string) (*types.PriceQuote, error) {
	profile, ok := h.catalog.Get(countryCode)
	if !ok || profile.PriceSource == "" {
		return nil, apperrors.NotFound("price feed", countryCode)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profile.PriceSource, nil)
	if err != nil {
		return nil, apperrors.Pricing("failed to build price request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Network("price feed unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf(apperrors.TypeNetwork, "price feed returned status %d", resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return nil, apperrors.Pricing("invalid price feed response", err)
	}
	if !body.Price.IsPositive() {
		return nil, apperrors.Newf(apperrors.TypePricing, "price feed returned non-positive price %s", body.Price)
	}

	return &types.PriceQuote{
		CountryCode: profile.Code,
		Price:       body.Price,
		Source:      h.Name(),
		FetchedAt:   time.Now(),
	}, nil
}

// ChainSource tries each source in order and returns the first quote
type ChainSource struct {
	sources []Source
}

// NewChainSource creates a chain
func NewChainSource(sources ...Source) *ChainSource {
	return &ChainSource{sources: sources}
}

// Name implements Source
func (c *ChainSource) Name() string {
	return "chain"
}

// FetchPrice implements Source
func (c *ChainSource) FetchPrice(ctx context.Context, countryCode string) (*types.PriceQuote, error) {
	var errs error
	for _, s := range c.sources {
		quote, err := s.FetchPrice(ctx, countryCode)
		if err == nil {
			return quote, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if errs == nil {
		errs = apperrors.New(apperrors.TypePricing, "no price sources configured")
	}
	return nil, errs
}

// CachingSource wraps a source with a per-country quote cache
type CachingSource struct {
	inner Source
	cache map[string]*cachedQuote
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
}

type cachedQuote struct {
	quote     *types.PriceQuote
	expiresAt time.Time
}

// NewCachingSource creates a caching wrapper
func NewCachingSource(inner Source, ttl time.Duration) *CachingSource {
	return &CachingSource{
		inner: inner,
		cache: make(map[string]*cachedQuote),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Name implements Source
func (c *CachingSource) Name() string {
	return c.inner.Name()
}

// FetchPrice implements Source. Failures are not cached.
func (c *CachingSource) FetchPrice(ctx context.Context, countryCode string) (*types.PriceQuote, error) {
	key, ok := catalog.Canonical(countryCode)
	if !ok {
		key = countryCode
	}

	// Check cache
	c.mu.RLock()
	if cached, ok := c.cache[key]; ok && c.now().Before(cached.expiresAt) {
		c.mu.RUnlock()
		return cached.quote, nil
	}
	c.mu.RUnlock()

	// Fetch
	quote, err := c.inner.FetchPrice(ctx, countryCode)
	if err != nil {
		return nil, err
	}

	// Cache
	c.mu.Lock()
	c.cache[key] = &cachedQuote{
		quote:     quote,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()

	return quote, nil
}

// LoggingSource reports fetch latency and failures
type LoggingSource struct {
	inner  Source
	logger *zap.Logger
}

// NewLoggingSource creates a logging wrapper
func NewLoggingSource(inner Source, logger *zap.Logger) *LoggingSource {
	return &LoggingSource{inner: inner, logger: logging.OrNop(logger).Named("pricing")}
}

// Name implements Source
func (l *LoggingSource) Name() string {
	return l.inner.Name()
}

// FetchPrice implements Source
func (l *LoggingSource) FetchPrice(ctx context.Context, countryCode string) (*types.PriceQuote, error) {
	start := time.Now()
	quote, err := l.inner.FetchPrice(ctx, countryCode)
	fields := []zap.Field{
		zap.String("source", l.inner.Name()),
		zap.String("country", countryCode),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.logger.Warn("price fetch failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.logger.Debug("price fetched", append(fields, zap.Stringer("price", quote.Price))...)
	return quote, nil
}

// NewFromConfig assembles the configured source stack
func NewFromConfig(cfg config.PricingConfig, cat *catalog.Catalog, client *http.Client, logger *zap.Logger) (Source, error) {
	static := NewStaticSource(DefaultPrices(), decimal.NewFromFloat(cfg.FallbackPrice))

	var src Source
	switch cfg.Source {
	case config.PriceSourceStatic, "":
		src = static
	case config.PriceSourceHTTP:
		src = NewHTTPSource(cat, client, cfg.Timeout())
	case config.PriceSourceChain:
		src = NewChainSource(NewHTTPSource(cat, client, cfg.Timeout()), static)
	default:
		return nil, apperrors.Newf(apperrors.TypeConfig, "unknown price source %q", cfg.Source)
	}

	if cfg.CacheTTLSeconds > 0 {
		src = NewCachingSource(src, cfg.CacheTTL())
	}
	return NewLoggingSource(src, logger), nil
}
