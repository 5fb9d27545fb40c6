package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coffeehelper",
	Short: "CoffeeHelper is a coffee machine troubleshooting engine",
	Long: `CoffeeHelper walks you through diagnosing coffee machine problems with a
decision tree of questions and solutions, linked to step-by-step repair guides.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("data", "", "Directory with steps.yaml/guides.yaml/machines.yaml (empty: built-in demo data)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
