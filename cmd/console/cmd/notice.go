package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
)

// noticeCmd groups communication subcommands
var noticeCmd = &cobra.Command{
	Use:   "notice",
	Short: "Manage published notices",
}

var noticeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notices",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		notices, err := app.communication.ListNotices(context.Background())
		if err != nil {
			fail(err)
		}

		for _, n := range notices {
			fmt.Printf("%-10s %-40s %-12s %s\n", n.ID, n.Title, n.AudienceLabel, n.PublishedAt.DateOnly())
		}
	},
}

var noticePublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a notice",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		title, _ := cmd.Flags().GetString("title")
		body, _ := cmd.Flags().GetString("body")
		audience, _ := cmd.Flags().GetString("audience")
		if title == "" || body == "" {
			fail(fmt.Errorf("both --title and --body are required"))
		}

		notice, err := app.communication.PublishNotice(context.Background(), resources.NoticeInput{
			Title:    title,
			Body:     body,
			Audience: audience,
		})
		if err != nil {
			fail(err)
		}
		if notice != nil {
			fmt.Printf("Published notice %s\n", notice.ID)
		}
	},
}

var noticeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notice",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		if err := app.communication.DeleteNotice(context.Background(), args[0]); err != nil {
			fail(err)
		}
		fmt.Println("Deleted.")
	},
}

func init() {
	rootCmd.AddCommand(noticeCmd)
	noticeCmd.AddCommand(noticeListCmd)
	noticeCmd.AddCommand(noticePublishCmd)
	noticeCmd.AddCommand(noticeDeleteCmd)

	noticePublishCmd.Flags().String("title", "", "Notice title")
	noticePublishCmd.Flags().String("body", "", "Notice body")
	noticePublishCmd.Flags().String("audience", "ALL", "Audience (ALL, STUDENTS, STAFF)")
}
