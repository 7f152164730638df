package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mileage/core/types"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	assert.Equal(t, []string{"AU", "CA", "DE", "FR", "GB", "IN", "US"}, c.Codes())
	assert.Equal(t, "IN", c.DefaultCode())
	assert.Equal(t, "India", c.Default().Name)
	assert.Empty(t, c.Validate(DefaultValidationRules()))
}

func TestLookupExactMatch(t *testing.T) {
	c := Builtin()

	us := c.Lookup("US")
	assert.Equal(t, "United States", us.Name)
	assert.Equal(t, types.EfficiencyMPG, us.EfficiencyUnit)
	assert.Equal(t, types.Thresholds{Excellent: 35, Good: 25, Average: 20, Poor: 15}, us.Thresholds)

	de := c.Lookup("DE")
	assert.Equal(t, types.EfficiencyLitersPer100Km, de.EfficiencyUnit)
	assert.Equal(t, "€/km", de.CostPerDistanceUnit)
}

func TestLookupFallsBackToDefault(t *testing.T) {
	c := Builtin()

	for _, code := range []string{"", "ZZ", "JP", "not-a-code", "1"} {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, c.Default(), c.Lookup(code))
		})
	}
}

func TestLookupCanonicalisesCodes(t *testing.T) {
	c := Builtin()

	assert.Equal(t, "GB", c.Lookup(" gb ").Code)
	assert.Equal(t, "DE", c.Lookup("DEU").Code)
	assert.Equal(t, "US", c.Lookup("840").Code)
}

func TestGetDoesNotFallBack(t *testing.T) {
	c := Builtin()

	_, ok := c.Get("JP")
	assert.False(t, ok)

	p, ok := c.Get("fr")
	require.True(t, ok)
	assert.Equal(t, "France", p.Name)
}

func TestNewRejectsBadProfiles(t *testing.T) {
	good := BuiltinProfiles()[0]

	bad := good
	bad.Code = "JP"
	bad.Thresholds = types.Thresholds{Excellent: 5, Good: 10, Average: 15, Poor: 20}

	_, err := New([]types.Profile{good, bad}, "IN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JP")

	_, err = New([]types.Profile{good}, "US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default code US")

	_, err = New([]types.Profile{good, good}, "IN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestMergeOverridesAndExtends(t *testing.T) {
	base := Builtin()

	jp := types.Profile{
		Code: "jp", Name: "Japan",
		DistanceUnit: types.DistanceKilometers, FuelUnit: types.FuelLiters,
		Currency: "¥", EfficiencyUnit: types.EfficiencyKmPerLiter, CostPerDistanceUnit: "¥/km",
		Thresholds: types.Thresholds{Excellent: 22, Good: 16, Average: 11, Poor: 6},
	}
	us := base.Lookup("US")
	us.Thresholds.Excellent = 40

	merged, err := base.Merge([]types.Profile{jp, us}, "JP")
	require.NoError(t, err)

	assert.Equal(t, 8, merged.Len())
	assert.Equal(t, "Japan", merged.Lookup("unknown").Name)
	assert.Equal(t, 40.0, merged.Lookup("US").Thresholds.Excellent)
	assert.Equal(t, 35.0, base.Lookup("US").Thresholds.Excellent, "base catalog is unchanged")
}

const hclRegions = `
default = "NL"

region "NL" {
  name                   = "Netherlands"
  distance_unit          = "km"
  fuel_unit              = "liters"
  currency               = "€"
  efficiency_unit        = "l/100km"
  cost_per_distance_unit = "€/km"

  thresholds {
    excellent = 4.5
    good      = 6.5
    average   = 8.5
    poor      = 11
  }
}
`

func TestParseHCL(t *testing.T) {
	f, err := ParseHCL([]byte(hclRegions), "regions.hcl")
	require.NoError(t, err)

	assert.Equal(t, "NL", f.Default)
	require.Len(t, f.Profiles, 1)
	nl := f.Profiles[0]
	assert.Equal(t, "Netherlands", nl.Name)
	assert.Equal(t, types.EfficiencyLitersPer100Km, nl.EfficiencyUnit)
	assert.Equal(t, 4.5, nl.Thresholds.Excellent)
	assert.Equal(t, 11.0, nl.Thresholds.Poor)
}

func TestParseHCLReportsDiagnostics(t *testing.T) {
	_, err := ParseHCL([]byte(`region "NL" { name = }`), "broken.hcl")
	assert.Error(t, err)

	_, err = ParseHCL([]byte(`region "NL" { name = "Netherlands" }`), "missing.hcl")
	assert.Error(t, err)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "regions.hcl")
	require.NoError(t, os.WriteFile(hclPath, []byte(hclRegions), 0o644))

	standalone, err := Load(hclPath, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"NL"}, standalone.Codes())

	merged, err := Load(hclPath, true)
	require.NoError(t, err)
	assert.Equal(t, 8, merged.Len())
	assert.Equal(t, "NL", merged.DefaultCode())

	yamlPath := filepath.Join(dir, "regions.yaml")
	yamlSrc := `
regions:
  - code: IN
    name: India
    distance_unit: km
    fuel_unit: liters
    currency: "₹"
    efficiency_unit: km/l
    cost_per_distance_unit: "₹/km"
    thresholds: {excellent: 25, good: 18, average: 12, poor: 6}
`
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlSrc), 0o644))

	fromYAML, err := Load(yamlPath, false)
	require.NoError(t, err)
	assert.Equal(t, 25.0, fromYAML.Default().Thresholds.Excellent)

	_, err = Load(filepath.Join(dir, "regions.toml"), false)
	assert.Error(t, err)
}
