package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KelvinH2322/coffeehelper/internal/cli"
	"github.com/KelvinH2322/coffeehelper/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the step graph for consistency",
	Long:  `Crawls the graph from the entry point and reports dangling references, unreachable steps and missing guides.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data")
		if len(args) > 0 {
			dataDir = args[0]
		}

		store, catalog, _, err := cli.LoadData(dataDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		report := validator.Validate(store, catalog)
		for _, f := range report.Findings {
			fmt.Println(f)
		}

		if !report.OK() {
			fmt.Printf("Graph has %d error(s).\n", len(report.Errors()))
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
