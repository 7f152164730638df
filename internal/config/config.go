// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mileage/internal/logging"
)

// Price source kinds
const (
	PriceSourceStatic = "static"
	PriceSourceHTTP   = "http"
	PriceSourceChain  = "chain"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Region contains region catalog configuration
	Region RegionConfig `json:"region" yaml:"region"`

	// Locate contains location lookup configuration
	Locate LocateConfig `json:"locate" yaml:"locate"`

	// Pricing contains fuel price configuration
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	// Engine contains calculation configuration
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// RegionConfig contains region catalog settings
type RegionConfig struct {
	// CatalogPath is an optional HCL or YAML region file
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`

	// MergeBuiltin layers the file's regions over the built-in ones
	MergeBuiltin bool `json:"merge_builtin" yaml:"merge_builtin"`
}

// LocateConfig contains location lookup settings
type LocateConfig struct {
	// ReverseGeocodeURL resolves coordinates to a country code
	ReverseGeocodeURL string `json:"reverse_geocode_url" yaml:"reverse_geocode_url"`

	// IPLookupURL resolves the caller's address to a country code
	IPLookupURL string `json:"ip_lookup_url" yaml:"ip_lookup_url"`

	// TimeoutSeconds bounds each lookup step
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the per-step lookup timeout
func (c LocateConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PricingConfig contains fuel price settings
type PricingConfig struct {
	// Source selects static, http or chain (http then static)
	Source string `json:"source" yaml:"source"`

	// CacheTTLSeconds is how long to cache quotes, 0 disables caching
	CacheTTLSeconds int `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`

	// FallbackPrice is quoted by the static source for unlisted countries
	FallbackPrice float64 `json:"fallback_price" yaml:"fallback_price"`

	// TimeoutSeconds bounds a single remote price fetch
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// CacheTTL returns the quote cache lifetime
func (c PricingConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Timeout returns the remote fetch timeout
func (c PricingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EngineConfig contains calculation settings
type EngineConfig struct {
	// EnforceFuelWithinDistance rejects fuel amounts above the distance
	EnforceFuelWithinDistance bool `json:"enforce_fuel_within_distance" yaml:"enforce_fuel_within_distance"`

	// BatchConcurrency bounds parallel batch computation
	BatchConcurrency int `json:"batch_concurrency" yaml:"batch_concurrency"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Address to listen on
	Address string `json:"address" yaml:"address"`

	// ReadTimeoutSeconds for requests
	ReadTimeoutSeconds int `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`

	// WriteTimeoutSeconds for responses
	WriteTimeoutSeconds int `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`

	// MaxBodyBytes limits request body size
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// AllowedOrigins for CORS, empty disables CORS headers
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// Precision is the number of decimals shown
	Precision int `json:"precision" yaml:"precision"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Region: RegionConfig{
			MergeBuiltin: true,
		},
		Locate: LocateConfig{
			ReverseGeocodeURL: "https://api.bigdatacloud.net/data/reverse-geocode-client",
			IPLookupURL:       "https://ipapi.co/json/",
			TimeoutSeconds:    10,
		},
		Pricing: PricingConfig{
			Source:          PriceSourceStatic,
			CacheTTLSeconds: 3600,
			FallbackPrice:   95.50,
			TimeoutSeconds:  5,
		},
		Engine: EngineConfig{
			EnforceFuelWithinDistance: true,
			BatchConcurrency:          8,
		},
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			MaxBodyBytes:        1 << 20,
			AllowedOrigins:      []string{"*"},
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			Precision:     2,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	switch c.Pricing.Source {
	case PriceSourceStatic, PriceSourceHTTP, PriceSourceChain:
	default:
		return fmt.Errorf("pricing.source must be static, http or chain, got %q", c.Pricing.Source)
	}
	if c.Pricing.FallbackPrice < 0 {
		return fmt.Errorf("pricing.fallback_price must not be negative")
	}
	if c.Locate.TimeoutSeconds <= 0 {
		return fmt.Errorf("locate.timeout_seconds must be positive")
	}
	if c.Output.Precision < 0 || c.Output.Precision > 10 {
		return fmt.Errorf("output.precision must be between 0 and 10")
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
