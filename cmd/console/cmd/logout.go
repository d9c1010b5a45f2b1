package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd ends the session locally and server-side
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		if err := app.auth.Logout(context.Background()); err != nil {
			fail(err)
		}
		fmt.Println("Logged out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
