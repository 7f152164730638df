// Package location resolves a caller's country from coordinates or from
// their network address, and maps it onto a region profile.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "mileage/internal/errors"
)

// ReverseGeocoder maps coordinates to a two-letter country code
type ReverseGeocoder interface {
	CountryAt(ctx context.Context, latitude, longitude float64) (string, error)
}

// IPLocator maps the caller's network address to a two-letter country code
type IPLocator interface {
	Country(ctx context.Context) (string, error)
}

const maxResponseBytes = 64 << 10

// BigDataCloud is a ReverseGeocoder backed by the BigDataCloud
// reverse-geocode-client endpoint
type BigDataCloud struct {
	Endpoint string
	Client   *http.Client
}

type bigDataCloudResponse struct {
	CountryCode string `json:"countryCode"`
}

// CountryAt implements ReverseGeocoder
func (b *BigDataCloud) CountryAt(ctx context.Context, latitude, longitude float64) (string, error) {
	u, err := url.Parse(b.Endpoint)
	if err != nil {
		return "", apperrors.Config("invalid reverse geocode endpoint", err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("localityLanguage", "en")
	u.RawQuery = q.Encode()

	var resp bigDataCloudResponse
	if err := getJSON(ctx, b.Client, u.String(), &resp); err != nil {
		return "", err
	}
	return requireCode(resp.CountryCode, "reverse geocode")
}

// IPAPI is an IPLocator backed by the ipapi.co JSON endpoint
type IPAPI struct {
	Endpoint string
	Client   *http.Client
}

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Country implements IPLocator
func (i *IPAPI) Country(ctx context.Context) (string, error) {
	var resp ipapiResponse
	if err := getJSON(ctx, i.Client, i.Endpoint, &resp); err != nil {
		return "", err
	}
	if resp.Error {
		return "", apperrors.Newf(apperrors.TypeLookup, "ip lookup refused: %s", resp.Reason)
	}
	return requireCode(resp.CountryCode, "ip lookup")
}

func requireCode(code, step string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", apperrors.Newf(apperrors.TypeLookup, "%s returned no country code", step)
	}
	return code, nil
}

func getJSON(ctx context.Context, client *http.Client, target string, out interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return apperrors.Network("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.Network("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.Newf(apperrors.TypeNetwork, "unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return apperrors.Lookup(fmt.Sprintf("invalid response from %s", req.URL.Host), err)
	}
	return nil
}
