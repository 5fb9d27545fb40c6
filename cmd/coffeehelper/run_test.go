package main

import "testing"

// The bare invocation runs the walkthrough, so the run flags must parse on
// the root command as well as on the run subcommand.
func TestRootAcceptsRunFlags(t *testing.T) {
	if err := rootCmd.ParseFlags([]string{"--machine", "machine-003", "--no-banner"}); err != nil {
		t.Fatalf("root invocation must accept run flags: %v", err)
	}

	machine, err := rootCmd.Flags().GetString("machine")
	if err != nil || machine != "machine-003" {
		t.Errorf("machine flag = %q, err %v", machine, err)
	}
	noBanner, err := rootCmd.Flags().GetBool("no-banner")
	if err != nil || !noBanner {
		t.Errorf("no-banner flag = %v, err %v", noBanner, err)
	}
}
