package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/groblegark/graphd/internal/client"
	"github.com/groblegark/graphd/internal/model"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:     "graph",
	Short:   "Manage graphs",
	GroupID: "graphs",
}

var graphCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		properties, _ := cmd.Flags().GetString("properties")

		req := &model.GraphCreate{
			Name:        args[0],
			Description: description,
		}
		if properties != "" {
			req.Properties = json.RawMessage(properties)
		}

		g, err := graphClient.CreateGraph(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(g)
		} else {
			printGraphTable(g)
		}
		return nil
	},
}

var graphListCmd = &cobra.Command{
	Use:   "list",
	Short: "List graphs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := graphClient.ListGraphs(context.Background(), &client.ListGraphsRequest{
			Search: search,
			Sort:   sort,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printGraphListTable(resp.Graphs, resp.Total)
		}
		return nil
	},
}

var graphShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graphClient.GetGraph(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(g)
		} else {
			printGraphTable(g)
		}
		return nil
	},
}

var graphUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.GraphUpdate{}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.Description = &description
		}
		if cmd.Flags().Changed("properties") {
			properties, _ := cmd.Flags().GetString("properties")
			req.Properties = json.RawMessage(properties)
		}
		if req.Name == nil && req.Description == nil && req.Properties == nil {
			return fmt.Errorf("nothing to update; pass --name, --description, or --properties")
		}

		g, err := graphClient.UpdateGraph(context.Background(), args[0], req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(g)
		} else {
			printGraphTable(g)
		}
		return nil
	},
}

var graphDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a graph and all of its nodes and edges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := graphClient.DeleteGraph(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("graph %s deleted\n", args[0])
		return nil
	},
}

func init() {
	graphCreateCmd.Flags().String("description", "", "graph description")
	graphCreateCmd.Flags().String("properties", "", "graph properties as a JSON object")

	graphListCmd.Flags().String("search", "", "filter by name or description substring")
	graphListCmd.Flags().String("sort", "", "sort order (name, created_at, updated_at; prefix with - for descending)")
	graphListCmd.Flags().Int("limit", 0, "maximum number of graphs to return")
	graphListCmd.Flags().Int("offset", 0, "number of graphs to skip")

	graphUpdateCmd.Flags().String("name", "", "new name")
	graphUpdateCmd.Flags().String("description", "", "new description")
	graphUpdateCmd.Flags().String("properties", "", "new properties as a JSON object")

	graphCmd.AddCommand(graphCreateCmd)
	graphCmd.AddCommand(graphListCmd)
	graphCmd.AddCommand(graphShowCmd)
	graphCmd.AddCommand(graphUpdateCmd)
	graphCmd.AddCommand(graphDeleteCmd)
}
