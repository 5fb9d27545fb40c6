package ports

import "github.com/KelvinH2322/coffeehelper/pkg/domain"

// GuideCatalog is the read-only lookup of instruction guides. In this system
// it is an in-memory or sqlite-backed table; a production deployment would
// back it with a database or content-management API.
type GuideCatalog interface {
	// Lookup returns the guide with the given id, or domain.ErrGuideNotFound.
	Lookup(id string) (domain.Guide, error)

	// List returns the guides matching the filter, in catalog order.
	List(filter domain.GuideFilter) []domain.Guide
}

// MachineRegistry lists the known coffee machines offered for selection.
type MachineRegistry interface {
	// Machines returns all known machines in registry order.
	Machines() []domain.Machine

	// Machine returns the machine with the given id, or false.
	Machine(id string) (domain.Machine, bool)
}
