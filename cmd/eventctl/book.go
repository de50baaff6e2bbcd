package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventhub/internal/bookings"
	"eventhub/internal/payments"
	"eventhub/pkg/money"
)

func newBookCmd(a *app) *cobra.Command {
	var details payments.Details
	cmd := &cobra.Command{
		Use:   "book <event-id> <seat-id>...",
		Short: "Book seats as the signed-in user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eventID, err := parseID(args[0])
			if err != nil {
				return err
			}
			u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}

			ledger := a.ledger()
			sel, err := ledger.Prepare(ctx, eventID, args[1:])
			if err != nil {
				return describeConflict(err)
			}
			summary := sel.Summary()

			receipt, err := a.processor().Process(ctx, details, summary.Total)
			if err != nil {
				return err
			}

			b, err := ledger.Commit(ctx, u.ID, eventID, sel, receipt.Method)
			if err != nil {
				return describeConflict(err)
			}

			fmt.Fprintf(a.out, "Booked %s for %s\n", strings.Join(b.SeatIDs(), ", "), b.EventTitle)
			fmt.Fprintf(a.out, "Subtotal %s  Fee %s  Total %s\n",
				money.Format(summary.Subtotal), money.Format(summary.ServiceFee), money.Format(b.TotalAmount))
			fmt.Fprintf(a.out, "Transaction %s\n", b.TransactionID)
			return nil
		},
	}
	cmd.Flags().StringVar(&details.Method, "method", payments.MethodGCash, "Credit Card, GCash or PayMaya")
	cmd.Flags().StringVar(&details.MobileNumber, "mobile", "", "mobile number for e-wallet payments")
	cmd.Flags().StringVar(&details.CardNumber, "card", "", "card number")
	cmd.Flags().StringVar(&details.CardName, "card-name", "", "name on card")
	cmd.Flags().StringVar(&details.Expiry, "expiry", "", "card expiry MM/YY")
	cmd.Flags().StringVar(&details.CVV, "cvv", "", "card CVV")
	return cmd
}

func describeConflict(err error) error {
	var taken *bookings.SeatAlreadyTakenError
	if errors.As(err, &taken) {
		return fmt.Errorf("seats no longer available: %s", strings.Join(taken.SeatIDs, ", "))
	}
	return err
}
