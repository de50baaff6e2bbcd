package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eventhub/internal/bookings"
)

func newBookingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Inspect and manage bookings",
	}
	cmd.AddCommand(newBookingsListCmd(a), newBookingsExportCmd(a), newBookingsCancelCmd(a))
	return cmd
}

func newBookingsListCmd(a *app) *cobra.Command {
	var (
		query bookings.ListQuery
		mine  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if mine {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}
				query.UserID = u.ID
			}
			list, err := a.ledger().ListBookings(ctx, query)
			if err != nil {
				return err
			}
			customers, err := a.userService().DisplayNames(ctx)
			if err != nil {
				return err
			}
			renderBookings(a.out, list, customers)
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Status, "status", "", "confirmed or cancelled")
	cmd.Flags().Int64Var(&query.EventID, "event", 0, "only this event")
	cmd.Flags().Int64Var(&query.UserID, "user", 0, "only this user")
	cmd.Flags().StringVar(&query.Search, "search", "", "match transaction id or event title")
	cmd.Flags().BoolVar(&mine, "mine", false, "only the signed-in user's bookings")
	return cmd
}

func newBookingsExportCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all bookings as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := a.ledger().ListBookings(ctx, bookings.ListQuery{})
			if err != nil {
				return err
			}
			customers, err := a.userService().DisplayNames(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = a.out
			if path != "-" {
				if path == "" {
					path = bookings.ExportFilename(time.Now())
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := bookings.WriteCSV(w, list, customers); err != nil {
				return err
			}
			if path != "-" {
				fmt.Fprintf(a.out, "Exported %d bookings to %s\n", len(list), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "output file, - for stdout (default bookings-export-<date>.csv)")
	return cmd
}

func newBookingsCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking as the signed-in user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, _, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}
			b, err := a.ledger().Cancel(cmd.Context(), id, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Booking %s is %s\n", b.TransactionID, b.Status)
			return nil
		},
	}
}
