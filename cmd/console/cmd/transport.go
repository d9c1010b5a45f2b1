package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// transportCmd groups transport subcommands
var transportCmd = &cobra.Command{
	Use:   "transport",
	Short: "Manage vehicles and routes",
}

var transportVehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List the vehicle fleet",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		vehicles, err := app.transport.ListVehicles(context.Background())
		if err != nil {
			fail(err)
		}

		for _, v := range vehicles {
			fmt.Printf("%-12s %-20s cap=%-3d %-12s %s\n",
				v.Registration, v.Model, v.Capacity.Int(), v.StatusLabel, v.DriverName)
		}
	},
}

var transportRoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List routes and their vehicles",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		routes, err := app.transport.ListRoutes(context.Background())
		if err != nil {
			fail(err)
		}

		for _, r := range routes {
			vehicle := r.VehicleRegistration
			if vehicle == "" {
				vehicle = "unassigned"
			}
			fmt.Printf("%-24s %-12s stops: %s\n", r.Name, vehicle, strings.Join(r.Stops, " > "))
		}
	},
}

var transportAssignCmd = &cobra.Command{
	Use:   "assign <route-id> <vehicle-id>",
	Short: "Assign a vehicle to a route",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		if err := app.transport.AssignVehicle(context.Background(), args[0], args[1]); err != nil {
			fail(err)
		}
		fmt.Println("Assigned.")
	},
}

func init() {
	rootCmd.AddCommand(transportCmd)
	transportCmd.AddCommand(transportVehiclesCmd)
	transportCmd.AddCommand(transportRoutesCmd)
	transportCmd.AddCommand(transportAssignCmd)
}
