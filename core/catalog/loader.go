package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"mileage/core/types"
)

// File is the decoded content of a region data file
type File struct {
	Default  string          `yaml:"default"`
	Profiles []types.Profile `yaml:"regions"`
}

type hclFile struct {
	Default string      `hcl:"default,optional"`
	Regions []hclRegion `hcl:"region,block"`
}

type hclRegion struct {
	Code                string        `hcl:"code,label"`
	Name                string        `hcl:"name"`
	DistanceUnit        string        `hcl:"distance_unit"`
	FuelUnit            string        `hcl:"fuel_unit"`
	Currency            string        `hcl:"currency"`
	EfficiencyUnit      string        `hcl:"efficiency_unit"`
	CostPerDistanceUnit string        `hcl:"cost_per_distance_unit"`
	PriceSource         string        `hcl:"price_source,optional"`
	Thresholds          hclThresholds `hcl:"thresholds,block"`
}

type hclThresholds struct {
	Excellent float64 `hcl:"excellent"`
	Good      float64 `hcl:"good"`
	Average   float64 `hcl:"average"`
	Poor      float64 `hcl:"poor"`
}

// ParseHCL decodes region blocks of the form
//
//	default = "IN"
//	region "NL" {
//	  name = "Netherlands"
//	  ...
//	  thresholds { excellent = 5 ... }
//	}
func ParseHCL(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var decoded hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	out := &File{Default: decoded.Default}
	for _, r := range decoded.Regions {
		out.Profiles = append(out.Profiles, types.Profile{
			Code:                r.Code,
			Name:                r.Name,
			DistanceUnit:        types.DistanceUnit(r.DistanceUnit),
			FuelUnit:            types.FuelUnit(r.FuelUnit),
			Currency:            r.Currency,
			EfficiencyUnit:      types.EfficiencyUnit(r.EfficiencyUnit),
			CostPerDistanceUnit: r.CostPerDistanceUnit,
			PriceSource:         r.PriceSource,
			Thresholds: types.Thresholds{
				Excellent: r.Thresholds.Excellent,
				Good:      r.Thresholds.Good,
				Average:   r.Thresholds.Average,
				Poor:      r.Thresholds.Poor,
			},
		})
	}
	return out, nil
}

// ParseYAML decodes a YAML region file with a top-level "regions" list
func ParseYAML(src []byte) (*File, error) {
	var out File
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode region yaml: %w", err)
	}
	return &out, nil
}

// LoadFile reads a region file, choosing the format by extension
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return ParseHCL(data, path)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported region file format: %s", path)
	}
}

// Load builds a catalog from a region file. With merge the file's
// profiles extend and override the built-in ones.
func Load(path string, merge bool) (*Catalog, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if merge {
		return Builtin().Merge(f.Profiles, f.Default)
	}
	def := f.Default
	if def == "" {
		def = DefaultCode
	}
	return New(f.Profiles, def)
}
