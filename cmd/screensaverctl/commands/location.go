package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartscreen/backend/pkg/geo"
)

func locationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Resolve and inspect the current location",
	}
	cmd.AddCommand(locationShowCmd(), locationSetCmd(), locationClearCmd())
	return cmd
}

func locationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Look up the location from the public IP and print its status",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.Locations.Get(cmd.Context())
			return printJSON(cmd.OutOrStdout(), deps.Locations.Status())
		},
	}
}

func locationSetCmd() *cobra.Command {
	var (
		lat, lon              float64
		city, region, country string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Resolve browser-style coordinates (reverse geocoding, then IP fallback)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !geo.ValidCoordinates(lat, lon) {
				return fmt.Errorf("coordinates out of range: %v, %v", lat, lon)
			}
			loc := deps.Locations.SetBrowserLocation(cmd.Context(), lat, lon, city, region, country)
			return printJSON(cmd.OutOrStdout(), loc)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&city, "city", "", "city name; leave empty to reverse geocode")
	cmd.Flags().StringVar(&region, "region", "", "region or state")
	cmd.Flags().StringVar(&country, "country", "", "country")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func locationClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the location and re-run the IP lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.Locations.Clear(cmd.Context())
			return printJSON(cmd.OutOrStdout(), deps.Locations.Status())
		},
	}
}
