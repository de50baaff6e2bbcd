package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventhub/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the store with sample users and events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Occupancy < 0 || opts.Occupancy > 1 {
				return fmt.Errorf("occupancy must be between 0 and 1, got %v", opts.Occupancy)
			}
			res, err := seed.Load(cmd.Context(), a.store, opts, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Seeded %d users and %d events (%d seats occupied)\n",
				res.Users, res.Events, res.OccupiedSeats)
			return nil
		},
	}
	cmd.Flags().Float64Var(&opts.Occupancy, "occupancy", seed.DefaultOccupancy, "probability a seeded seat starts occupied")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for the occupancy pattern (0 = time based)")
	return cmd
}
