package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mileage/adapters/location"
	"mileage/adapters/pricing"
	"mileage/core/catalog"
	"mileage/core/engine"
	"mileage/internal/config"
	"mileage/internal/logging"
)

// Components are the collaborators built from a configuration
type Components struct {
	Catalog  *catalog.Catalog
	Engine   *engine.Engine
	Resolver *location.Resolver
	Prices   pricing.Source
}

// LoadCatalog returns the configured region catalog, or the built-in one
// when no region file is set.
func LoadCatalog(cfg config.RegionConfig) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Builtin(), nil
	}
	return catalog.Load(cfg.CatalogPath, cfg.MergeBuiltin)
}

// Build assembles every component from cfg
func Build(cfg *config.Config, client *http.Client, logger *zap.Logger) (*Components, error) {
	logger = logging.OrNop(logger)

	cat, err := LoadCatalog(cfg.Region)
	if err != nil {
		return nil, err
	}

	prices, err := pricing.NewFromConfig(cfg.Pricing, cat, client, logger.Named("pricing"))
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Options{
		EnforceFuelWithinDistance: cfg.Engine.EnforceFuelWithinDistance,
	}, logger.Named("engine"))

	logger.Debug("components built",
		zap.Int("regions", cat.Len()),
		zap.String("default_region", cat.DefaultCode()),
		zap.String("price_source", prices.Name()))

	return &Components{
		Catalog:  cat,
		Engine:   eng,
		Resolver: location.NewResolverFromConfig(cfg.Locate, cat, client, logger),
		Prices:   prices,
	}, nil
}

// NewServerFromConfig builds the components and the API server over them
func NewServerFromConfig(version string, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	c, err := Build(cfg, &http.Client{}, logger)
	if err != nil {
		return nil, err
	}
	h := NewHandler(c.Engine, c.Catalog, c.Resolver, c.Prices, cfg.Engine.BatchConcurrency, logger)
	return NewServer(version, h, ServerOptions{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}), nil
}

// ListenAndServe runs the API server until ctx is done, then shuts it
// down gracefully
func ListenAndServe(ctx context.Context, cfg *config.Config, version string, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	handler, err := NewServerFromConfig(version, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
