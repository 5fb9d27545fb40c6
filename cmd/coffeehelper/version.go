package main

import (
	"fmt"
	"strings"

	"github.com/KelvinH2322/coffeehelper"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of coffeehelper",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coffeehelper version %s\n", strings.TrimSpace(coffeehelper.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
