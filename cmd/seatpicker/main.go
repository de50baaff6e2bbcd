// Command seatpicker books seats interactively from the terminal as the
// user signed in with eventctl login.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/payments"
	"eventhub/internal/shared/config"
	"eventhub/internal/shared/database"
	"eventhub/internal/tui"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var details payments.Details
	cmd := &cobra.Command{
		Use:   "seatpicker <event-id>",
		Short: "Pick and book seats for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || eventID < 1 {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)
			db, err := database.InitDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			store, err := database.OpenStore(cfg, db, log)
			if err != nil {
				return err
			}
			defer store.Close()

			// Browsing works signed out; enter then asks for a login.
			user, err := users.NewRepository(store, log).CurrentUser(cmd.Context())
			if err != nil && !errors.Is(err, users.ErrUserNotFound) {
				return fmt.Errorf("failed to read current user: %w", err)
			}

			model := tui.New(tui.Config{
				EventID: eventID,
				User:    user,
				Payment: details,
				Events:  events.NewService(events.NewRepository(store, log), log),
				Ledger: bookings.NewService(bookings.NewRepository(store, log),
					bookings.WithLogger(log),
					bookings.WithReleaseOnCancel(cfg.Booking.ReleaseSeatsOnCancel),
				),
				Processor: payments.NewProcessor(cfg.Booking.PaymentDelay),
			})

			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok && m.Booking() != nil {
				b := m.Booking()
				fmt.Fprintf(cmd.OutOrStdout(), "Booking %d confirmed, transaction %s\n", b.ID, b.TransactionID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&details.Method, "method", payments.MethodGCash, "Credit Card, GCash or PayMaya")
	cmd.Flags().StringVar(&details.MobileNumber, "mobile", "", "mobile number for e-wallet payments")
	cmd.Flags().StringVar(&details.CardNumber, "card", "", "card number")
	cmd.Flags().StringVar(&details.CardName, "card-name", "", "name on card")
	cmd.Flags().StringVar(&details.Expiry, "expiry", "", "card expiry MM/YY")
	cmd.Flags().StringVar(&details.CVV, "cvv", "", "card security code")
	return cmd
}
