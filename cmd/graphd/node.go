package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/groblegark/graphd/internal/model"
	"github.com/spf13/cobra"
)

var nodeCmd = &cobra.Command{
	Use:     "node",
	Short:   "Manage nodes",
	GroupID: "data",
}

var nodeAddCmd = &cobra.Command{
	Use:   "add <graph-id> <key>",
	Short: "Add a node to a graph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")
		style, _ := cmd.Flags().GetString("style")
		data, _ := cmd.Flags().GetString("data")

		req := &model.NodeCreate{
			NodeID: args[1],
			Label:  label,
		}
		if cmd.Flags().Changed("x") {
			x, _ := cmd.Flags().GetFloat64("x")
			req.X = &x
		}
		if cmd.Flags().Changed("y") {
			y, _ := cmd.Flags().GetFloat64("y")
			req.Y = &y
		}
		if style != "" {
			req.Style = json.RawMessage(style)
		}
		if data != "" {
			req.Data = json.RawMessage(data)
		}

		n, err := graphClient.CreateNode(context.Background(), args[0], req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(n)
		} else {
			printNodeTable(n)
		}
		return nil
	},
}

var nodeListCmd = &cobra.Command{
	Use:   "list <graph-id>",
	Short: "List the nodes of a graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := graphClient.ListNodes(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(nodes)
		} else {
			printNodeListTable(nodes)
		}
		return nil
	},
}

var nodeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := graphClient.GetNode(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(n)
		} else {
			printNodeTable(n)
		}
		return nil
	},
}

var nodeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.NodeUpdate{}
		if cmd.Flags().Changed("label") {
			label, _ := cmd.Flags().GetString("label")
			req.Label = &label
		}
		if cmd.Flags().Changed("x") {
			x, _ := cmd.Flags().GetFloat64("x")
			req.X = &x
		}
		if cmd.Flags().Changed("y") {
			y, _ := cmd.Flags().GetFloat64("y")
			req.Y = &y
		}
		if cmd.Flags().Changed("style") {
			style, _ := cmd.Flags().GetString("style")
			req.Style = json.RawMessage(style)
		}
		if cmd.Flags().Changed("data") {
			data, _ := cmd.Flags().GetString("data")
			req.Data = json.RawMessage(data)
		}
		if req.Label == nil && req.X == nil && req.Y == nil && req.Style == nil && req.Data == nil {
			return fmt.Errorf("nothing to update; pass --label, --x, --y, --style, or --data")
		}

		n, err := graphClient.UpdateNode(context.Background(), args[0], req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(n)
		} else {
			printNodeTable(n)
		}
		return nil
	},
}

var nodeDeleteCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a node and all edges that reference it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := graphClient.DeleteNode(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("node %s removed\n", args[0])
		return nil
	},
}

func init() {
	nodeAddCmd.Flags().String("label", "", "display label")
	nodeAddCmd.Flags().Float64("x", 0, "x coordinate")
	nodeAddCmd.Flags().Float64("y", 0, "y coordinate")
	nodeAddCmd.Flags().String("style", "", "style as a JSON object")
	nodeAddCmd.Flags().String("data", "", "arbitrary data as a JSON object")

	nodeUpdateCmd.Flags().String("label", "", "new display label")
	nodeUpdateCmd.Flags().Float64("x", 0, "new x coordinate")
	nodeUpdateCmd.Flags().Float64("y", 0, "new y coordinate")
	nodeUpdateCmd.Flags().String("style", "", "new style as a JSON object")
	nodeUpdateCmd.Flags().String("data", "", "new data as a JSON object")

	nodeCmd.AddCommand(nodeAddCmd)
	nodeCmd.AddCommand(nodeListCmd)
	nodeCmd.AddCommand(nodeShowCmd)
	nodeCmd.AddCommand(nodeUpdateCmd)
	nodeCmd.AddCommand(nodeDeleteCmd)
}
