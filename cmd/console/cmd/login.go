package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
)

// loginCmd authenticates against the backend and stores the session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the school management backend",
	Long: `Log in with an email and password. The password is read from the
terminal without echo. Tokens are stored in the credentials file so
subsequent commands run authenticated.

Examples:
  # Interactive login
  console login --email admin@school.test

  # Log in against a different backend
  console login --email admin@school.test --api-url https://api.school.test`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			fmt.Print("Email: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				fail(err)
			}
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fail(fmt.Errorf("failed to read password: %w", err))
		}

		remember, _ := cmd.Flags().GetBool("remember")
		result, err := app.auth.Login(context.Background(), resources.LoginInput{
			Email:    email,
			Password: string(password),
			Remember: remember,
		})
		if err != nil {
			fail(err)
		}

		if result.RequiresTwoFactor {
			fmt.Print("Two-factor code: ")
			var code string
			fmt.Scanln(&code)
			result, err = app.auth.VerifyTwoFactor(context.Background(), strings.TrimSpace(code))
			if err != nil {
				fail(err)
			}
		}

		if result.User != nil {
			fmt.Printf("Logged in as %s (%s)\n", result.User.Email, result.User.Role)
		} else {
			fmt.Println("Logged in.")
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().Bool("remember", true, "Persist the session to disk")
}
