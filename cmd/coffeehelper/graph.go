package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KelvinH2322/coffeehelper/internal/cli"
	"github.com/KelvinH2322/coffeehelper/internal/presentation/graph"
)

// graphCmd exports the step graph as a Mermaid diagram.
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the step graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the troubleshooting decision tree.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data")
		if len(args) > 0 {
			dataDir = args[0]
		}

		store, _, _, err := cli.LoadData(dataDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(store, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
