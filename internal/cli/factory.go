// Package cli implements the interactive walkthrough loop and the shared
// plumbing behind the coffeehelper commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/KelvinH2322/coffeehelper/internal/logging"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/file"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// LoadData builds the store, catalog and machine registry for the commands.
// An empty dataDir falls back to the built-in demo dataset; otherwise the
// directory must hold steps.yaml (guides.yaml and machines.yaml optional).
func LoadData(dataDir string) (ports.StepStore, ports.GuideCatalog, ports.MachineRegistry, error) {
	if dataDir == "" {
		return memory.SeededStepStore(), memory.SeededCatalog(), memory.NewMachines(memory.SeedMachines()...), nil
	}
	store, catalog, machines, err := file.LoadDir(dataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load data from %s: %w", dataDir, err)
	}
	return store, catalog, machines, nil
}

// CreateLogger configures the command logger. In debug mode it writes to
// stderr to stay out of the walkthrough UI on stdout.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
