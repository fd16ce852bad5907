package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/groblegark/graphd/internal/model"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:     "import [file]",
	Short:   "Import a complete graph document (reads stdin when no file is given)",
	GroupID: "graphs",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}

		var doc model.GraphInput
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing document: %w", err)
		}

		g, err := graphClient.ImportGraph(context.Background(), &doc)
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
