package coffeehelper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KelvinH2322/coffeehelper/internal/logging"
	"github.com/KelvinH2322/coffeehelper/internal/validator"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/file"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/guides"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
	"github.com/KelvinH2322/coffeehelper/pkg/session"
	"github.com/KelvinH2322/coffeehelper/pkg/tree"
)

// Version of the library.
var Version = "0.1.0"

// Engine is the high-level entry point for the CoffeeHelper library.
// It bundles a step store, a guide catalog and a session manager behind one
// simplified API; the underlying ports remain accessible for advanced use.
type Engine struct {
	steps        ports.StepStore
	catalog      ports.GuideCatalog
	machines     ports.MachineRegistry
	sessionStore ports.SessionStore
	sessions     *session.Manager
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStepStore injects a custom step store, bypassing the default loading.
func WithStepStore(store ports.StepStore) Option {
	return func(e *Engine) { e.steps = store }
}

// WithCatalog injects a custom guide catalog.
func WithCatalog(catalog ports.GuideCatalog) Option {
	return func(e *Engine) { e.catalog = catalog }
}

// WithMachines injects a machine registry.
func WithMachines(machines ports.MachineRegistry) Option {
	return func(e *Engine) { e.machines = machines }
}

// WithSessionStore injects the session persistence backend
// (default: in-memory).
func WithSessionStore(store ports.SessionStore) Option {
	return func(e *Engine) { e.sessionStore = store }
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New initializes an Engine.
//
// With a non-empty dataDir the content is loaded from its YAML files
// (steps.yaml required). An empty dataDir uses the built-in demo dataset
// unless WithStepStore is given.
func New(dataDir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.steps == nil {
		if dataDir != "" {
			store, catalog, machines, err := file.LoadDir(dataDir)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", dataDir, err)
			}
			eng.steps = store
			if eng.catalog == nil {
				eng.catalog = catalog
			}
			if eng.machines == nil {
				eng.machines = machines
			}
		} else {
			eng.steps = memory.SeededStepStore()
			if eng.catalog == nil {
				eng.catalog = memory.SeededCatalog()
			}
			if eng.machines == nil {
				eng.machines = memory.NewMachines(memory.SeedMachines()...)
			}
		}
	}
	if eng.catalog == nil {
		eng.catalog = memory.NewCatalog()
	}
	if eng.machines == nil {
		eng.machines = memory.NewMachines()
	}
	if eng.sessionStore == nil {
		eng.sessionStore = memory.NewSessionStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.sessions = session.NewManager(eng.steps, eng.sessionStore, session.WithLogger(eng.logger))
	return eng, nil
}

// Steps returns the step store.
func (e *Engine) Steps() ports.StepStore { return e.steps }

// Catalog returns the guide catalog.
func (e *Engine) Catalog() ports.GuideCatalog { return e.catalog }

// Machines returns the machine registry.
func (e *Engine) Machines() ports.MachineRegistry { return e.machines }

// Sessions returns the persistent session manager.
func (e *Engine) Sessions() *session.Manager { return e.sessions }

// Validate checks the step graph and returns the full report.
func (e *Engine) Validate() domain.Report {
	return validator.Validate(e.steps, e.catalog)
}

// Tree renders the decision tree from rootID; guides on solutions are
// resolved for the given machine (nil: as declared).
func (e *Engine) Tree(rootID string, machine *domain.Machine) *tree.Node {
	if rootID == "" {
		rootID = e.steps.EntryPointID()
	}
	return tree.Render(e.steps, e.catalog, rootID, machine)
}

// ResolveGuide resolves a guide id for a machine using the specificity
// fallback chain.
func (e *Engine) ResolveGuide(guideID string, machine *domain.Machine) (domain.Guide, bool) {
	return guides.Resolve(e.catalog, guideID, machine)
}

// NewSession starts an unmanaged in-process walkthrough at the entry point.
func (e *Engine) NewSession() *session.Session {
	return session.New(e.steps)
}

// StartSession creates a persisted walkthrough session.
func (e *Engine) StartSession(ctx context.Context, machine *domain.Machine) (string, *domain.State, error) {
	return e.sessions.Start(ctx, machine)
}
