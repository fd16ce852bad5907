package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printGraphTable(g *model.GraphResponse) {
	fmt.Printf("ID:          %s\n", ui.RenderID(g.ID))
	fmt.Printf("Name:        %s\n", g.Name)
	if g.Description != "" {
		fmt.Printf("Description: %s\n", g.Description)
	}
	fmt.Printf("Nodes:       %d\n", g.NodeCount)
	fmt.Printf("Edges:       %d\n", g.EdgeCount)
	if len(g.Properties) > 0 {
		fmt.Printf("Properties:  %s\n", string(g.Properties))
	}
	if !g.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", g.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !g.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:  %s\n", g.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printGraphListTable(graphs []*model.GraphResponse, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tNODES\tEDGES\tUPDATED")
	for _, g := range graphs {
		name := g.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			g.ID,
			name,
			g.NodeCount,
			g.EdgeCount,
			g.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d graphs (%d total)\n", len(graphs), total)
}

func printNodeTable(n *model.NodeResponse) {
	fmt.Printf("ID:         %s\n", ui.RenderID(n.ID))
	fmt.Printf("Graph:      %s\n", n.GraphID)
	fmt.Printf("Key:        %s\n", n.NodeID)
	if n.Label != "" {
		fmt.Printf("Label:      %s\n", n.Label)
	}
	if n.X != nil && n.Y != nil {
		fmt.Printf("Position:   (%g, %g)\n", *n.X, *n.Y)
	}
	if len(n.Style) > 0 {
		fmt.Printf("Style:      %s\n", string(n.Style))
	}
	if len(n.Data) > 0 {
		fmt.Printf("Data:       %s\n", string(n.Data))
	}
	if !n.CreatedAt.IsZero() {
		fmt.Printf("Created At: %s\n", n.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printNodeListTable(nodes []*model.NodeResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEY\tLABEL\tX\tY")
	for _, n := range nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			n.ID,
			n.NodeID,
			n.Label,
			formatCoord(n.X),
			formatCoord(n.Y),
		)
	}
	w.Flush()
	fmt.Printf("\n%d nodes\n", len(nodes))
}

func printEdgeTable(e *model.EdgeResponse) {
	fmt.Printf("ID:         %s\n", ui.RenderID(e.ID))
	fmt.Printf("Graph:      %s\n", e.GraphID)
	if e.EdgeID != "" {
		fmt.Printf("Key:        %s\n", e.EdgeID)
	}
	fmt.Printf("Source:     %s\n", e.SourceNodeID)
	fmt.Printf("Target:     %s\n", e.TargetNodeID)
	if e.Label != "" {
		fmt.Printf("Label:      %s\n", e.Label)
	}
	if e.Weight != nil {
		fmt.Printf("Weight:     %g\n", *e.Weight)
	}
	if !e.CreatedAt.IsZero() {
		fmt.Printf("Created At: %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printEdgeListTable(edges []*model.EdgeResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTARGET\tLABEL\tWEIGHT")
	for _, e := range edges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.SourceNodeID,
			e.TargetNodeID,
			e.Label,
			formatCoord(e.Weight),
		)
	}
	w.Flush()
	fmt.Printf("\n%d edges\n", len(edges))
}

func printEventListTable(evts []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTOPIC\tACTOR")
	for _, e := range evts {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			ui.RenderTopic(e.Topic),
			e.Actor,
		)
	}
	w.Flush()
	fmt.Printf("\n%d events\n", len(evts))
}

func formatCoord(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *f)
}
