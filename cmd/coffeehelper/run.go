package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KelvinH2322/coffeehelper/internal/cli"
	"github.com/KelvinH2322/coffeehelper/internal/presentation/tui"
)

// runCmd starts the interactive walkthrough on stdin/stdout.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive troubleshooting walkthrough",
	Long:  `Walks through the troubleshooting questions interactively and shows the matching solution and repair guide.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data")
		debug, _ := cmd.Flags().GetBool("debug")
		machineID, _ := cmd.Flags().GetString("machine")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		store, catalog, machines, err := cli.LoadData(dataDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if !noBanner {
			tui.PrintBanner()
		}

		err = cli.RunWalkthrough(cli.WalkthroughOptions{
			Store:     store,
			Catalog:   catalog,
			Machines:  machines,
			MachineID: machineID,
			In:        os.Stdin,
			Out:       os.Stdout,
			Logger:    cli.CreateLogger(debug),
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)

	// 'run' is the default when no command is provided, so its flags must
	// exist on the root command too.
	addRunFlags(rootCmd)
	rootCmd.Run = runCmd.Run
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("machine", "m", "", "Machine id to troubleshoot (skips the selection prompt)")
	cmd.Flags().Bool("no-banner", false, "Suppress the startup banner")
}
