package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show aggregate counts across all graphs",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := graphClient.GetStats(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(stats)
			return nil
		}
		fmt.Printf("Graphs: %d\n", stats.TotalGraphs)
		fmt.Printf("Nodes:  %d\n", stats.TotalNodes)
		fmt.Printf("Edges:  %d\n", stats.TotalEdges)
		return nil
	},
}
