// Package cmd - region, location and price lookup commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mileage/core/types"
	"mileage/internal/config"
)

var (
	regionsFormat string
	locateLat     float64
	locateLon     float64
)

// regionsCmd lists the region catalog
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the supported regions",
	Long: `List every region of the catalog with its units and currency.
The default region is marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		c, err := components(cfg)
		if err != nil {
			return err
		}
		f, err := formatter(cfg, regionsFormat)
		if err != nil {
			return err
		}
		return f.RenderRegions(cmd.OutOrStdout(), c.Catalog.Profiles(), c.Catalog.DefaultCode())
	},
}

// locateCmd runs region detection
var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Detect the caller's region",
	Long: `Detect the region from coordinates when given, else from the caller's
IP address. Falls back to the default region when both lookups fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := components(config.Get())
		if err != nil {
			return err
		}
		var coords *types.Coordinates
		if cmd.Flags().Changed("lat") {
			coords = &types.Coordinates{Latitude: locateLat, Longitude: locateLon}
		}
		loc := c.Resolver.Locate(cmd.Context(), coords)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Region:  %s (%s)\n", loc.Profile.Name, loc.Profile.Code)
		if loc.CountryCode != "" && loc.CountryCode != loc.Profile.Code {
			fmt.Fprintf(out, "Country: %s (not in catalog)\n", loc.CountryCode)
		}
		fmt.Fprintf(out, "Source:  %s\n", loc.Source)
		return nil
	},
}

// priceCmd quotes a fuel price
var priceCmd = &cobra.Command{
	Use:   "price <region>",
	Short: "Show the quoted fuel price for a region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := components(config.Get())
		if err != nil {
			return err
		}
		quote, err := c.Prices.FetchPrice(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		profile := c.Catalog.Lookup(quote.CountryCode)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s%s per %s (%s)\n",
			quote.CountryCode, profile.Currency, quote.Price.StringFixed(2),
			types.LabelsFor(profile, types.FuelPetrol).PriceUnit, quote.Source)
		return nil
	},
}

func init() {
	regionsCmd.Flags().StringVarP(&regionsFormat, "format", "f", "", "output format (cli, json); default from config")

	locateCmd.Flags().Float64Var(&locateLat, "lat", 0, "latitude")
	locateCmd.Flags().Float64Var(&locateLon, "lon", 0, "longitude")
	locateCmd.MarkFlagsRequiredTogether("lat", "lon")
}
