// Package cmd - calc command
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mileage/adapters/location"
	"mileage/core/engine"
	"mileage/core/output"
	"mileage/core/types"
	"mileage/internal/config"
	"mileage/internal/logging"
)

var (
	calcRegion      string
	calcDistance    float64
	calcFuel        float64
	calcPrice       float64
	calcFuelType    string
	calcFormat      string
	calcAutoPrice   bool
	calcNoDistCheck bool
	calcLat         float64
	calcLon         float64
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate efficiency, cost and rating for one trip",
	Long: `Calculate fuel efficiency, cost per distance, total cost and the
efficiency rating for a single trip.

The region is taken from --region when set. Otherwise it is detected from
--lat/--lon, then from the caller's IP address, then the default region.

Examples:
  mileage calc --region US --distance 100 --fuel 4 --price 3.5
  mileage calc --region DE --distance 320 --fuel 19.2 --price 1.7 --fuel-type diesel
  mileage calc --lat 48.85 --lon 2.35 --distance 200 --fuel 12 --auto-price`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcRegion, "region", "r", "", "region code (ISO 3166 alpha-2, alpha-3 or numeric)")
	calcCmd.Flags().Float64VarP(&calcDistance, "distance", "d", 0, "distance traveled in the region's distance unit")
	calcCmd.Flags().Float64Var(&calcFuel, "fuel", 0, "fuel or energy consumed in the region's unit")
	calcCmd.Flags().Float64VarP(&calcPrice, "price", "p", 0, "price per fuel unit in the region's currency")
	calcCmd.Flags().StringVarP(&calcFuelType, "fuel-type", "t", string(types.FuelPetrol), "fuel type (petrol, diesel, electric, hybrid, cng)")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "output format (cli, json); default from config")
	calcCmd.Flags().BoolVar(&calcAutoPrice, "auto-price", false, "use the region's quoted fuel price instead of --price")
	calcCmd.Flags().BoolVar(&calcNoDistCheck, "no-distance-check", false, "allow fuel amounts greater than the distance")
	calcCmd.Flags().Float64Var(&calcLat, "lat", 0, "latitude used to detect the region")
	calcCmd.Flags().Float64Var(&calcLon, "lon", 0, "longitude used to detect the region")

	_ = calcCmd.MarkFlagRequired("distance")
	_ = calcCmd.MarkFlagRequired("fuel")
	calcCmd.MarkFlagsRequiredTogether("lat", "lon")
}

// explicitLocator resolves every request to one chosen region
type explicitLocator struct {
	resolver *location.Resolver
	code     string
}

func (e explicitLocator) Locate(_ context.Context, coords *types.Coordinates) types.Location {
	loc := e.resolver.ForCode(e.code)
	loc.Coordinates = coords
	return loc
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	cfg := engineConfig(calcNoDistCheck)
	c, err := components(cfg)
	if err != nil {
		return err
	}

	var locator engine.Locator = c.Resolver
	if calcRegion != "" {
		locator = explicitLocator{resolver: c.Resolver, code: calcRegion}
	}

	var coords *types.Coordinates
	if cmd.Flags().Changed("lat") {
		coords = &types.Coordinates{Latitude: calcLat, Longitude: calcLon}
	}

	var prices engine.PriceQuoter
	if calcAutoPrice {
		prices = c.Prices
	}

	fuelType := types.FuelType(calcFuelType)
	orch := engine.NewOrchestrator(c.Engine, locator, prices, logging.Named("calc"))
	session := orch.Prepare(ctx, coords, fuelType)

	input := types.TripInput{
		Distance:     calcDistance,
		FuelConsumed: calcFuel,
		UnitPrice:    calcPrice,
		FuelType:     fuelType,
	}
	if calcAutoPrice {
		if session.Price == nil {
			return fmt.Errorf("no fuel price available for %s; pass --price instead", session.Location.Profile.Code)
		}
		input = session.WithSuggestedPrice(input)
	}

	logging.Debug("calculating trip",
		zap.String("region", session.Location.Profile.Code),
		zap.String("source", string(session.Location.Source)))

	result, err := orch.Calculate(session, input)
	if err != nil {
		return describeValidation(err)
	}

	f, err := formatter(cfg, calcFormat)
	if err != nil {
		return err
	}
	return f.Render(cmd.OutOrStdout(), &output.Report{
		Profile: session.Location.Profile,
		Input:   input,
		Result:  result,
		Labels:  session.Labels,
	})
}

// engineConfig returns the active configuration, with the fuel/distance
// check disabled when requested
func engineConfig(noDistanceCheck bool) *config.Config {
	cfg := *config.Get()
	if noDistanceCheck {
		cfg.Engine.EnforceFuelWithinDistance = false
	}
	return &cfg
}

func formatter(cfg *config.Config, flag string) (output.Formatter, error) {
	format := flag
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	return output.New(output.Format(format), cfg.Output.Precision)
}

// describeValidation turns field errors into one readable error
func describeValidation(err error) error {
	fields := engine.ValidationErrors(err)
	if len(fields) == 0 {
		return err
	}
	msg := "invalid trip input:"
	for _, f := range fields {
		msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Message)
	}
	return fmt.Errorf("%s", msg)
}
