package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventctl",
		Short:         "eventhub administration CLI",
		Long:          `Seed, inspect and manage events and bookings in an eventhub store.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.AddCommand(
		newSeedCmd(a),
		newEventsCmd(a),
		newBookingsCmd(a),
		newBookCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
	)
	return root
}
