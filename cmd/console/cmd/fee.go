package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
)

// feeCmd groups fee management subcommands
var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Manage fee invoices and payments",
}

var feeInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List fee invoices",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		studentID, _ := cmd.Flags().GetString("student")
		status, _ := cmd.Flags().GetString("status")

		invoices, err := app.fees.ListInvoices(context.Background(), resources.InvoiceQuery{
			StudentID: studentID,
			Status:    status,
		})
		if err != nil {
			fail(err)
		}

		for _, inv := range invoices.Items {
			fmt.Printf("%-10s %-28s %10.2f %-16s due %s\n",
				inv.ID, inv.StudentName, inv.Amount.Float64(), inv.StatusLabel, inv.DueDate.DateOnly())
		}
	},
}

var feePayCmd = &cobra.Command{
	Use:   "pay <invoice-id>",
	Short: "Record a payment against an invoice",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		amount, _ := cmd.Flags().GetFloat64("amount")
		method, _ := cmd.Flags().GetString("method")
		reference, _ := cmd.Flags().GetString("reference")
		if amount <= 0 {
			fail(fmt.Errorf("--amount must be positive"))
		}

		payment, err := app.fees.RecordPayment(context.Background(), resources.PaymentInput{
			InvoiceID: args[0],
			Amount:    amount,
			Method:    method,
			Reference: reference,
		})
		if err != nil {
			fail(err)
		}

		if payment != nil {
			fmt.Printf("Recorded payment %s of %.2f (%s)\n", payment.ID, payment.Amount.Float64(), payment.MethodLabel)
		} else {
			fmt.Println("Payment recorded.")
		}
	},
}

func init() {
	rootCmd.AddCommand(feeCmd)
	feeCmd.AddCommand(feeInvoicesCmd)
	feeCmd.AddCommand(feePayCmd)

	feeInvoicesCmd.Flags().String("student", "", "Filter by student id")
	feeInvoicesCmd.Flags().String("status", "", "Filter by status")

	feePayCmd.Flags().Float64("amount", 0, "Payment amount")
	feePayCmd.Flags().String("method", "CASH", "Payment method")
	feePayCmd.Flags().String("reference", "", "External reference")
}
