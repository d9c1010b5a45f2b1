package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
)

// studentCmd groups student record subcommands
var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage student records",
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		students, err := app.students.List(context.Background(), resources.StudentQuery{
			Search: search,
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			fail(err)
		}

		for _, s := range students.Items {
			fmt.Printf("%-12s %-28s %-12s %s\n", s.AdmissionNo, s.FullName(), s.ClassName, s.StatusLabel)
		}
		if students.Pagination != nil {
			fmt.Printf("%d students total\n", students.Pagination.Total)
		}
	},
}

var studentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one student",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		student, err := app.students.Get(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		if student == nil {
			fmt.Println("Not found.")
			return
		}

		fmt.Printf("Name:      %s\n", student.FullName())
		fmt.Printf("Email:     %s\n", student.Email)
		fmt.Printf("Admission: %s (%s)\n", student.AdmissionNo, student.Admitted.DateOnly())
		fmt.Printf("Class:     %s\n", student.ClassName)
		fmt.Printf("Status:    %s\n", student.StatusLabel)
	},
}

func init() {
	rootCmd.AddCommand(studentCmd)
	studentCmd.AddCommand(studentListCmd)
	studentCmd.AddCommand(studentShowCmd)

	studentListCmd.Flags().StringP("search", "s", "", "Search term")
	studentListCmd.Flags().Int("page", 0, "Page number")
	studentListCmd.Flags().Int("limit", 0, "Page size")
}
