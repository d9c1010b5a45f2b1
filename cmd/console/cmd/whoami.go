package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the stored session state without calling the backend
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		tokens := app.creds.Tokens()
		if tokens.IsZero() {
			fmt.Println("Not logged in.")
			return
		}

		fmt.Println("Logged in.")
		if tenant := app.tenant.TenantID(); tenant != "" {
			fmt.Printf("Tenant: %s\n", tenant)
		}
		if !tokens.ExpiresAt.IsZero() {
			state := "valid"
			if tokens.Expired(time.Now()) {
				state = "expired"
			}
			fmt.Printf("Access token: %s, expires %s\n", state, tokens.ExpiresAt.Format(time.RFC3339))
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
