// Package file loads authored troubleshooting content from YAML files, so a
// graph can be edited in a text editor and versioned like any other document.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// Conventional file names inside a data directory.
const (
	StepsFile    = "steps.yaml"
	GuidesFile   = "guides.yaml"
	MachinesFile = "machines.yaml"
)

// stepDoc is the on-disk shape of a step. Kind discriminates which fields
// apply; unknown kinds are rejected at load time.
type stepDoc struct {
	Kind             string          `yaml:"kind"`
	ID               string          `yaml:"id"`
	Text             string          `yaml:"text"`
	Options          []domain.Option `yaml:"options"`
	Title            string          `yaml:"title"`
	Description      string          `yaml:"description"`
	Guide            string          `yaml:"guide"`
	ProfessionalHelp bool            `yaml:"professional_help"`
}

type stepsDoc struct {
	EntryPoint string    `yaml:"entry_point"`
	Steps      []stepDoc `yaml:"steps"`
}

type guidesDoc struct {
	Guides []domain.Guide `yaml:"guides"`
}

type machinesDoc struct {
	Machines []domain.Machine `yaml:"machines"`
}

// LoadSteps reads a steps file into a fresh in-memory step store.
// The file may designate a custom entry point; ids must be unique.
func LoadSteps(path string) (*memory.StepStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read steps file: %w", err)
	}

	var doc stepsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var opts []memory.StoreOption
	if doc.EntryPoint != "" {
		opts = append(opts, memory.WithEntryPoint(doc.EntryPoint))
	}
	store := memory.NewStepStore(opts...)

	seen := make(map[string]bool, len(doc.Steps))
	for i, sd := range doc.Steps {
		if sd.ID == "" {
			return nil, fmt.Errorf("%s: step %d is missing an id", path, i)
		}
		if seen[sd.ID] {
			return nil, fmt.Errorf("%s: duplicate step id %q", path, sd.ID)
		}
		seen[sd.ID] = true

		step, err := sd.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: step %q: %w", path, sd.ID, err)
		}
		if err := store.Upsert(step); err != nil {
			return nil, fmt.Errorf("%s: step %q: %w", path, sd.ID, err)
		}
	}
	return store, nil
}

func (sd stepDoc) toDomain() (domain.Step, error) {
	switch domain.StepKind(sd.Kind) {
	case domain.KindQuestion:
		return domain.Question{ID: sd.ID, Text: sd.Text, Options: sd.Options}, nil
	case domain.KindSolution:
		return domain.Solution{
			ID:               sd.ID,
			Title:            sd.Title,
			Description:      sd.Description,
			GuideID:          sd.Guide,
			ProfessionalHelp: sd.ProfessionalHelp,
		}, nil
	default:
		return nil, fmt.Errorf("unknown step kind %q", sd.Kind)
	}
}

// LoadGuides reads a guides file into a fresh in-memory catalog.
func LoadGuides(path string) (*memory.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guides file: %w", err)
	}

	var doc guidesDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, g := range doc.Guides {
		if g.ID == "" {
			return nil, fmt.Errorf("%s: guide %d is missing an id", path, i)
		}
	}
	return memory.NewCatalog(doc.Guides...), nil
}

// LoadMachines reads a machines file into a fresh machine registry.
func LoadMachines(path string) (*memory.Machines, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read machines file: %w", err)
	}

	var doc machinesDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return memory.NewMachines(doc.Machines...), nil
}

// LoadDir loads a conventional data directory. Missing guides/machines files
// fall back to empty collections; a missing steps file is an error since
// there is nothing to troubleshoot without a graph.
func LoadDir(dir string) (*memory.StepStore, *memory.Catalog, *memory.Machines, error) {
	store, err := LoadSteps(filepath.Join(dir, StepsFile))
	if err != nil {
		return nil, nil, nil, err
	}

	catalog := memory.NewCatalog()
	if path := filepath.Join(dir, GuidesFile); fileExists(path) {
		if catalog, err = LoadGuides(path); err != nil {
			return nil, nil, nil, err
		}
	}

	machines := memory.NewMachines()
	if path := filepath.Join(dir, MachinesFile); fileExists(path) {
		if machines, err = LoadMachines(path); err != nil {
			return nil, nil, nil, err
		}
	}

	return store, catalog, machines, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
