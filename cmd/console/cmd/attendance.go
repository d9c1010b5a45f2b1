package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// attendanceCmd groups attendance subcommands
var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "View daily attendance",
}

var attendanceDayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "List attendance for a date (defaults to today)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		date := time.Now().Format(time.DateOnly)
		if len(args) == 1 {
			date = args[0]
		}
		classID, _ := cmd.Flags().GetString("class")

		records, err := app.attendance.ListByDate(context.Background(), date, classID)
		if err != nil {
			fail(err)
		}

		for _, r := range records {
			fmt.Printf("%-28s %s\n", r.StudentName, r.StatusLabel)
		}
	},
}

var attendanceSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show an attendance summary",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		classID, _ := cmd.Flags().GetString("class")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		summary, err := app.attendance.Summary(context.Background(), classID, from, to)
		if err != nil {
			fail(err)
		}
		if summary == nil {
			fmt.Println("No summary available.")
			return
		}

		fmt.Printf("Present: %d  Absent: %d  Late: %d  (%.1f%% present)\n",
			summary.Present.Int(), summary.Absent.Int(), summary.Late.Int(),
			summary.PresentRate.Float64())
	},
}

func init() {
	rootCmd.AddCommand(attendanceCmd)
	attendanceCmd.AddCommand(attendanceDayCmd)
	attendanceCmd.AddCommand(attendanceSummaryCmd)

	attendanceDayCmd.Flags().String("class", "", "Filter by class id")

	attendanceSummaryCmd.Flags().String("class", "", "Filter by class id")
	attendanceSummaryCmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	attendanceSummaryCmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
}
