package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"eventhub/internal/events"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse events",
	}

	var query events.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.eventRepo().List(cmd.Context())
			if err != nil {
				return err
			}
			renderEvents(a.out, events.Filter(all, query))
			return nil
		},
	}
	list.Flags().StringVar(&query.Search, "search", "", "match title, description or location")
	list.Flags().StringVar(&query.Category, "category", "", "exact category")

	show := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event and its seat map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := a.eventRepo().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderEvent(a.out, e)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
