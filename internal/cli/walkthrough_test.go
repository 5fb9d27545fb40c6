package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

func passthrough(md string) (string, error) { return md, nil }

func runScript(t *testing.T, machineID string, input string) string {
	t.Helper()

	store := memory.SeededStepStore()
	catalog := memory.SeededCatalog()
	machines := memory.NewMachines(memory.SeedMachines()...)

	var out bytes.Buffer
	err := RunWalkthrough(WalkthroughOptions{
		Store:     store,
		Catalog:   catalog,
		Machines:  machines,
		MachineID: machineID,
		In:        strings.NewReader(input),
		Out:       &out,
		Render:    passthrough,
	})
	if err != nil {
		t.Fatalf("RunWalkthrough: %v", err)
	}
	return out.String()
}

func TestWalkthroughReachesSolution(t *testing.T) {
	// Skip machine selection, pick "Machine not turning on", quit.
	out := runScript(t, "", "\n4\nq\n")

	if !strings.Contains(out, "What problem are you experiencing") {
		t.Errorf("entry question missing:\n%s", out)
	}
	if !strings.Contains(out, "Machine Not Turning On") {
		t.Errorf("solution missing:\n%s", out)
	}
	if !strings.Contains(out, "professional service") {
		t.Errorf("professional help note missing:\n%s", out)
	}
}

func TestWalkthroughBackAndRestart(t *testing.T) {
	out := runScript(t, "", "\n1\nb\n1\nr\nq\n")

	// After back and restart the entry question shows again.
	if strings.Count(out, "What problem are you experiencing") < 3 {
		t.Errorf("expected the entry question three times:\n%s", out)
	}
	if !strings.Contains(out, "Where is the machine leaking from?") {
		t.Errorf("leak question missing:\n%s", out)
	}
}

func TestWalkthroughPreselectedMachine(t *testing.T) {
	out := runScript(t, "machine-003", "4\nq\n")

	if !strings.Contains(out, "Troubleshooting a Gaggia Classic Pro.") {
		t.Errorf("machine banner missing:\n%s", out)
	}
	if strings.Contains(out, "Which machine do you have?") {
		t.Errorf("machine prompt should be skipped:\n%s", out)
	}
}

func TestWalkthroughUnknownMachine(t *testing.T) {
	store := memory.SeededStepStore()
	err := RunWalkthrough(WalkthroughOptions{
		Store:     store,
		Catalog:   memory.SeededCatalog(),
		Machines:  memory.NewMachines(memory.SeedMachines()...),
		MachineID: "machine-999",
		In:        strings.NewReader(""),
		Out:       &bytes.Buffer{},
		Render:    passthrough,
	})
	if err == nil {
		t.Fatal("expected error for unknown machine id")
	}
}

func TestWalkthroughMissingEntryPoint(t *testing.T) {
	// A store whose entry point was never loaded: restarting cannot help,
	// the walkthrough must fail instead of spinning on the same missing id.
	store := memory.NewStepStore()
	if err := store.Upsert(domain.Question{ID: "q-other", Text: "Orphan?"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	var out bytes.Buffer
	err := RunWalkthrough(WalkthroughOptions{
		Store:   store,
		Catalog: memory.NewCatalog(),
		In:      strings.NewReader("q\n"),
		Out:     &out,
		Render:  passthrough,
	})
	if err == nil {
		t.Fatal("expected error for a store without its entry point")
	}
	if !strings.Contains(err.Error(), domain.EntryPointID) {
		t.Errorf("error should name the entry point, got: %v", err)
	}
	if strings.Contains(out.String(), "no longer exists") {
		t.Errorf("must not emit restart messages for a missing entry point:\n%s", out.String())
	}
}

func TestWalkthroughRejectsBadInput(t *testing.T) {
	out := runScript(t, "", "\nnope\n99\nq\n")

	if !strings.Contains(out, "Pick an option number") {
		t.Errorf("bad input hint missing:\n%s", out)
	}
	if !strings.Contains(out, "That option does not exist here.") {
		t.Errorf("out-of-range hint missing:\n%s", out)
	}
}

func TestWalkthroughResolvesGuideForMachine(t *testing.T) {
	// Leak -> group head: solution links guide-003 (Gaggia Classic Pro).
	out := runScript(t, "machine-003", "1\n1\nq\n")

	if !strings.Contains(out, "Leaking Group Head") {
		t.Errorf("solution missing:\n%s", out)
	}
	if !strings.Contains(out, "Fixing Low Pressure on Gaggia Classic Pro") {
		t.Errorf("resolved guide missing:\n%s", out)
	}
}

func TestLoadDataFallsBackToSeed(t *testing.T) {
	store, catalog, machines, err := LoadData("")
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(store.ListAll()) == 0 {
		t.Error("seed store is empty")
	}
	if len(catalog.List(domain.GuideFilter{})) == 0 {
		t.Error("seed catalog is empty")
	}
	if len(machines.Machines()) == 0 {
		t.Error("seed machines are empty")
	}
}
