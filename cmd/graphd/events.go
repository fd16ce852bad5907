package main

import (
	"context"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:     "events <graph-id>",
	Short:   "Show the change history of a graph",
	GroupID: "system",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		evts, err := graphClient.GetEvents(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(evts)
		} else {
			printEventListTable(evts)
		}
		return nil
	},
}
