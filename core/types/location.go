package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationSource records which resolution step produced a location
type LocationSource string

const (
	SourceGeolocation LocationSource = "geolocation"
	SourceIP          LocationSource = "ip"
	SourceDefault     LocationSource = "default"
	SourceExplicit    LocationSource = "explicit"
)

// Coordinates is a WGS84 position reported by the caller
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is the resolved region for a caller. CountryCode is the code
// the lookup reported and may be unknown to the catalog, in which case
// Profile is the default profile.
type Location struct {
	CountryCode string         `json:"country_code,omitempty"`
	Profile     Profile        `json:"profile"`
	Source      LocationSource `json:"source"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
}

// PriceQuote is a fuel price reported by a price source
type PriceQuote struct {
	CountryCode string          `json:"country_code"`
	Price       decimal.Decimal `json:"price"`
	Source      string          `json:"source"`
	FetchedAt   time.Time       `json:"fetched_at"`
}
