package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mileage/core/catalog"
	"mileage/core/types"
	"mileage/internal/config"
	apperrors "mileage/internal/errors"
)

type geocoderFunc func(ctx context.Context, lat, lon float64) (string, error)

func (f geocoderFunc) CountryAt(ctx context.Context, lat, lon float64) (string, error) {
	return f(ctx, lat, lon)
}

type ipFunc func(ctx context.Context) (string, error)

func (f ipFunc) Country(ctx context.Context) (string, error) { return f(ctx) }

func TestBigDataCloudClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.52", r.URL.Query().Get("latitude"))
		assert.Equal(t, "13.405", r.URL.Query().Get("longitude"))
		assert.Equal(t, "en", r.URL.Query().Get("localityLanguage"))
		_, _ = w.Write([]byte(`{"countryCode":"DE","countryName":"Germany"}`))
	}))
	defer srv.Close()

	code, err := (&BigDataCloud{Endpoint: srv.URL, Client: srv.Client()}).CountryAt(context.Background(), 52.52, 13.405)
	require.NoError(t, err)
	assert.Equal(t, "DE", code)
}

func TestIPAPIClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7","country_code":"AU"}`))
	}))
	defer srv.Close()

	code, err := (&IPAPI{Endpoint: srv.URL, Client: srv.Client()}).Country(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AU", code)
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/down":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/refused":
			_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
		case "/empty":
			_, _ = w.Write([]byte(`{"countryCode":""}`))
		default:
			_, _ = w.Write([]byte(`<html>`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	_, err := (&IPAPI{Endpoint: srv.URL + "/down"}).Country(ctx)
	assert.True(t, apperrors.IsType(err, apperrors.TypeNetwork))

	_, err = (&IPAPI{Endpoint: srv.URL + "/refused"}).Country(ctx)
	assert.ErrorContains(t, err, "RateLimited")

	_, err = (&BigDataCloud{Endpoint: srv.URL + "/empty"}).CountryAt(ctx, 0, 0)
	assert.True(t, apperrors.IsType(err, apperrors.TypeLookup))

	_, err = (&IPAPI{Endpoint: srv.URL + "/garbage"}).Country(ctx)
	assert.True(t, apperrors.IsType(err, apperrors.TypeLookup))
}

func TestResolverPrefersGeolocation(t *testing.T) {
	geo := geocoderFunc(func(context.Context, float64, float64) (string, error) { return "us", nil })
	ip := ipFunc(func(context.Context) (string, error) {
		t.Fatal("ip lookup must not run when geocoding succeeds")
		return "", nil
	})

	r := NewResolver(catalog.Builtin(), geo, ip, time.Second, nil)
	coords := &types.Coordinates{Latitude: 40.7, Longitude: -74}
	loc := r.Locate(context.Background(), coords)

	assert.Equal(t, "US", loc.CountryCode)
	assert.Equal(t, "United States", loc.Profile.Name)
	assert.Equal(t, types.SourceGeolocation, loc.Source)
	assert.Same(t, coords, loc.Coordinates)
}

func TestResolverFallsBackToIP(t *testing.T) {
	geo := geocoderFunc(func(context.Context, float64, float64) (string, error) { return "", errors.New("boom") })
	ip := ipFunc(func(context.Context) (string, error) { return "GB", nil })

	loc := NewResolver(catalog.Builtin(), geo, ip, time.Second, nil).Locate(context.Background(), &types.Coordinates{})
	assert.Equal(t, types.SourceIP, loc.Source)
	assert.Equal(t, "United Kingdom", loc.Profile.Name)
}

func TestResolverSkipsGeocodingWithoutCoordinates(t *testing.T) {
	geo := geocoderFunc(func(context.Context, float64, float64) (string, error) {
		t.Fatal("no coordinates, no reverse geocoding")
		return "", nil
	})
	ip := ipFunc(func(context.Context) (string, error) { return "CA", nil })

	loc := NewResolver(catalog.Builtin(), geo, ip, time.Second, nil).Locate(context.Background(), nil)
	assert.Equal(t, "CA", loc.Profile.Code)
}

func TestResolverFallsBackToDefault(t *testing.T) {
	slow := ipFunc(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	start := time.Now()
	loc := NewResolver(catalog.Builtin(), nil, slow, 20*time.Millisecond, nil).Locate(context.Background(), nil)

	assert.Less(t, time.Since(start), 2*time.Second, "the step timeout bounds the wait")
	assert.Equal(t, types.SourceDefault, loc.Source)
	assert.Equal(t, "IN", loc.Profile.Code)
	assert.Empty(t, loc.CountryCode)
}

func TestResolverUnknownCountryKeepsCode(t *testing.T) {
	ip := ipFunc(func(context.Context) (string, error) { return "JP", nil })

	loc := NewResolver(catalog.Builtin(), nil, ip, time.Second, nil).Locate(context.Background(), nil)
	assert.Equal(t, "JP", loc.CountryCode)
	assert.Equal(t, "IN", loc.Profile.Code)
	assert.Equal(t, types.SourceIP, loc.Source)
}

func TestNewResolverFromConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"countryCode":"FR","country_code":"FR"}`))
	}))
	defer srv.Close()

	cfg := config.Default().Locate
	cfg.ReverseGeocodeURL = srv.URL
	cfg.IPLookupURL = ""

	r := NewResolverFromConfig(cfg, catalog.Builtin(), srv.Client(), nil)
	loc := r.Locate(context.Background(), &types.Coordinates{Latitude: 48.85, Longitude: 2.35})
	assert.Equal(t, "FR", loc.Profile.Code)

	loc = r.Locate(context.Background(), nil)
	assert.Equal(t, types.SourceDefault, loc.Source, "ip step disabled")

	assert.Equal(t, types.SourceExplicit, r.ForCode("de").Source)
	assert.Equal(t, "DE", r.ForCode("de").Profile.Code)
}
