package memory

import (
	"sync"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// Catalog implements ports.GuideCatalog over a static slice of guides.
// The catalog is read-only once constructed.
type Catalog struct {
	guides []domain.Guide
	byID   map[string]int
}

// NewCatalog creates a catalog from the given guides. Catalog order follows
// the argument order.
func NewCatalog(guides ...domain.Guide) *Catalog {
	c := &Catalog{
		guides: append([]domain.Guide(nil), guides...),
		byID:   make(map[string]int, len(guides)),
	}
	for i, g := range c.guides {
		c.byID[g.ID] = i
	}
	return c
}

// Lookup returns the guide with the given id.
func (c *Catalog) Lookup(id string) (domain.Guide, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Guide{}, domain.ErrGuideNotFound
	}
	return c.guides[i], nil
}

// List returns the guides matching the filter.
func (c *Catalog) List(filter domain.GuideFilter) []domain.Guide {
	out := make([]domain.Guide, 0, len(c.guides))
	for _, g := range c.guides {
		if filter.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}

// Machines implements ports.MachineRegistry over a static slice.
type Machines struct {
	mu       sync.RWMutex
	machines []domain.Machine
}

// NewMachines creates a registry from the given machines.
func NewMachines(machines ...domain.Machine) *Machines {
	return &Machines{machines: append([]domain.Machine(nil), machines...)}
}

// Machines returns all known machines.
func (m *Machines) Machines() []domain.Machine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Machine(nil), m.machines...)
}

// Machine returns the machine with the given id.
func (m *Machines) Machine(id string) (domain.Machine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, machine := range m.machines {
		if machine.ID == id {
			return machine, true
		}
	}
	return domain.Machine{}, false
}
