// Package cmd - batch command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mileage/core/output"
	"mileage/core/types"
	"mileage/internal/config"
	"mileage/internal/logging"
)

var (
	batchRegion      string
	batchFormat      string
	batchNoDistCheck bool
)

// TripsFile is the YAML document read by the batch command
type TripsFile struct {
	Region string            `yaml:"region"`
	Trips  []types.TripInput `yaml:"trips"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <trips.yaml>",
	Short: "Calculate a file of trips for one region",
	Long: `Calculate every trip of a YAML file against one region. Invalid trips
are reported individually and do not stop the batch.

File format:
  region: US
  trips:
    - distance: 100
      fuel_consumed: 4
      unit_price: 3.5
      fuel_type: petrol

Examples:
  mileage batch trips.yaml
  mileage batch --region DE --format json trips.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchRegion, "region", "r", "", "region code, overrides the file's region")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format (cli, json); default from config")
	batchCmd.Flags().BoolVar(&batchNoDistCheck, "no-distance-check", false, "allow fuel amounts greater than the distance")
}

// ReadTripsFile decodes a trips file, rejecting unknown keys
func ReadTripsFile(path string) (*TripsFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out TripsFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(out.Trips) == 0 {
		return nil, fmt.Errorf("%s contains no trips", path)
	}
	return &out, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	file, err := ReadTripsFile(args[0])
	if err != nil {
		return err
	}

	cfg := engineConfig(batchNoDistCheck)
	c, err := components(cfg)
	if err != nil {
		return err
	}

	region := file.Region
	if batchRegion != "" {
		region = batchRegion
	}
	profile := c.Catalog.Lookup(region)

	items, err := c.Engine.ComputeBatch(cmd.Context(), file.Trips, profile, batchLimit(cfg))
	if err != nil {
		return err
	}
	logging.Debug("batch computed", zap.String("region", profile.Code), zap.Int("trips", len(items)))

	f, err := formatter(cfg, batchFormat)
	if err != nil {
		return err
	}
	return f.RenderBatch(cmd.OutOrStdout(), &output.BatchReport{Profile: profile, Items: items})
}

func batchLimit(cfg *config.Config) int {
	return cfg.Engine.BatchConcurrency
}
