package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// dashboardCmd renders the landing-page aggregate
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard overview",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		overview, err := app.dashboard.Overview(context.Background())
		if err != nil {
			fail(err)
		}

		if overview.Hostel != nil {
			fmt.Printf("Hostel occupancy: %d/%d rooms occupied (%.1f%%)\n",
				overview.Hostel.Occupied.Int(), overview.Hostel.TotalCapacity.Int(),
				overview.Hostel.OccupancyRate.Float64())
		}
		fmt.Printf("Buildings: %d\n", len(overview.Buildings))
		fmt.Printf("Rooms loaded: %d\n", len(overview.Rooms))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
