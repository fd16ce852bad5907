package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/groblegark/graphd/internal/model"
	"github.com/spf13/cobra"
)

var edgeCmd = &cobra.Command{
	Use:     "edge",
	Short:   "Manage edges",
	GroupID: "data",
}

var edgeAddCmd = &cobra.Command{
	Use:   "add <graph-id> <source-node-id> <target-node-id>",
	Short: "Add an edge between two nodes of a graph",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		label, _ := cmd.Flags().GetString("label")
		style, _ := cmd.Flags().GetString("style")
		data, _ := cmd.Flags().GetString("data")

		req := &model.EdgeCreate{
			EdgeID:       key,
			SourceNodeID: args[1],
			TargetNodeID: args[2],
			Label:        label,
		}
		if cmd.Flags().Changed("weight") {
			weight, _ := cmd.Flags().GetFloat64("weight")
			req.Weight = &weight
		}
		if style != "" {
			req.Style = json.RawMessage(style)
		}
		if data != "" {
			req.Data = json.RawMessage(data)
		}

		e, err := graphClient.CreateEdge(context.Background(), args[0], req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(e)
		} else {
			printEdgeTable(e)
		}
		return nil
	},
}

var edgeListCmd = &cobra.Command{
	Use:   "list <graph-id>",
	Short: "List the edges of a graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edges, err := graphClient.ListEdges(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(edges)
		} else {
			printEdgeListTable(edges)
		}
		return nil
	},
}

var edgeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := graphClient.GetEdge(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(e)
		} else {
			printEdgeTable(e)
		}
		return nil
	},
}

var edgeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.EdgeUpdate{}
		if cmd.Flags().Changed("label") {
			label, _ := cmd.Flags().GetString("label")
			req.Label = &label
		}
		if cmd.Flags().Changed("weight") {
			weight, _ := cmd.Flags().GetFloat64("weight")
			req.Weight = &weight
		}
		if cmd.Flags().Changed("style") {
			style, _ := cmd.Flags().GetString("style")
			req.Style = json.RawMessage(style)
		}
		if cmd.Flags().Changed("data") {
			data, _ := cmd.Flags().GetString("data")
			req.Data = json.RawMessage(data)
		}
		if req.Label == nil && req.Weight == nil && req.Style == nil && req.Data == nil {
			return fmt.Errorf("nothing to update; pass --label, --weight, --style, or --data")
		}

		e, err := graphClient.UpdateEdge(context.Background(), args[0], req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(e)
		} else {
			printEdgeTable(e)
		}
		return nil
	},
}

var edgeDeleteCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := graphClient.DeleteEdge(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("edge %s removed\n", args[0])
		return nil
	},
}

func init() {
	edgeAddCmd.Flags().String("key", "", "user-facing edge key")
	edgeAddCmd.Flags().String("label", "", "display label")
	edgeAddCmd.Flags().Float64("weight", 0, "edge weight")
	edgeAddCmd.Flags().String("style", "", "style as a JSON object")
	edgeAddCmd.Flags().String("data", "", "arbitrary data as a JSON object")

	edgeUpdateCmd.Flags().String("label", "", "new display label")
	edgeUpdateCmd.Flags().Float64("weight", 0, "new edge weight")
	edgeUpdateCmd.Flags().String("style", "", "new style as a JSON object")
	edgeUpdateCmd.Flags().String("data", "", "new data as a JSON object")

	edgeCmd.AddCommand(edgeAddCmd)
	edgeCmd.AddCommand(edgeListCmd)
	edgeCmd.AddCommand(edgeShowCmd)
	edgeCmd.AddCommand(edgeUpdateCmd)
	edgeCmd.AddCommand(edgeDeleteCmd)
}
