package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
)

// hostelCmd groups hostel management subcommands
var hostelCmd = &cobra.Command{
	Use:   "hostel",
	Short: "Manage hostel buildings and rooms",
}

var hostelBuildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "List hostel buildings",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		buildings, err := app.hostels.ListBuildings(context.Background())
		if err != nil {
			fail(err)
		}

		if len(buildings) == 0 {
			fmt.Println("No buildings.")
			return
		}
		for _, b := range buildings {
			fmt.Printf("%-12s %-24s floors=%d rooms=%d\n", b.Code, b.Name, b.Floors.Int(), b.TotalRooms.Int())
		}
	},
}

var hostelRoomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List hostel rooms",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		buildingID, _ := cmd.Flags().GetString("building")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		rooms, err := app.hostels.ListRooms(context.Background(), resources.RoomQuery{
			BuildingID: buildingID,
			Page:       page,
			Limit:      limit,
		})
		if err != nil {
			fail(err)
		}

		for _, r := range rooms.Items {
			fmt.Printf("%-8s %-20s %d/%d %s\n",
				r.RoomNumber, r.BuildingName, r.Occupied.Int(), r.Capacity.Int(), r.StatusLabel)
		}
		if rooms.Pagination != nil {
			fmt.Printf("Page %d of %d rooms (limit %d)\n",
				rooms.Pagination.Page, rooms.Pagination.Total, rooms.Pagination.Limit)
		}
	},
}

var hostelOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show hostel occupancy overview",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		overview, err := app.hostels.Overview(context.Background())
		if err != nil {
			fail(err)
		}
		if overview == nil {
			fmt.Println("No overview available.")
			return
		}

		fmt.Printf("Buildings: %d\n", overview.TotalBuildings.Int())
		fmt.Printf("Rooms:     %d\n", overview.TotalRooms.Int())
		fmt.Printf("Capacity:  %d (occupied %d, available %d)\n",
			overview.TotalCapacity.Int(), overview.Occupied.Int(), overview.Available.Int())
		fmt.Printf("Occupancy: %.1f%%\n", overview.OccupancyRate.Float64())
	},
}

var hostelAllocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate a student to a room",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		roomID, _ := cmd.Flags().GetString("room")
		studentID, _ := cmd.Flags().GetString("student")
		if roomID == "" || studentID == "" {
			fail(fmt.Errorf("both --room and --student are required"))
		}

		err = app.hostels.AllocateRoom(context.Background(), resources.AllocationInput{
			RoomID:    roomID,
			StudentID: studentID,
		})
		if err != nil {
			fail(err)
		}
		fmt.Println("Allocated.")
	},
}

func init() {
	rootCmd.AddCommand(hostelCmd)
	hostelCmd.AddCommand(hostelBuildingsCmd)
	hostelCmd.AddCommand(hostelRoomsCmd)
	hostelCmd.AddCommand(hostelOverviewCmd)
	hostelCmd.AddCommand(hostelAllocateCmd)

	hostelRoomsCmd.Flags().StringP("building", "b", "", "Filter by building id")
	hostelRoomsCmd.Flags().Int("page", 0, "Page number")
	hostelRoomsCmd.Flags().Int("limit", 0, "Page size")

	hostelAllocateCmd.Flags().String("room", "", "Room id")
	hostelAllocateCmd.Flags().String("student", "", "Student id")
}
