// Package guides resolves the best-matching instruction guide for a solution,
// given the machine the user actually selected.
package guides

import (
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// Resolve returns the guide to display for a solution's declared guide id.
//
// Solutions are authored against one illustrative machine; when the user has
// selected a different machine, a guide for their machine in the same category
// is preferred. The fallback chain, first match wins:
//
//  1. exact brand + exact model + same category
//  2. exact brand + generic model + same category
//  3. generic brand + generic model + same category
//  4. the originally declared guide
//
// When no machine is selected, or the declared guide already matches the
// selection, the declared guide is returned unchanged. Resolve never errors:
// a missing declared guide yields (zero, false).
func Resolve(catalog ports.GuideCatalog, guideID string, machine *domain.Machine) (domain.Guide, bool) {
	if guideID == "" {
		return domain.Guide{}, false
	}

	candidate, err := catalog.Lookup(guideID)
	if err != nil {
		return domain.Guide{}, false
	}

	if machine == nil || candidate.AppliesTo(machine.Brand, machine.Model) {
		return candidate, true
	}

	fallbacks := []domain.GuideFilter{
		{Brand: machine.Brand, Model: machine.Model, Category: candidate.Category},
		{Brand: machine.Brand, Model: domain.GenericMachine, Category: candidate.Category},
		{Brand: domain.GenericMachine, Model: domain.GenericMachine, Category: candidate.Category},
	}
	for _, filter := range fallbacks {
		if matches := catalog.List(filter); len(matches) > 0 {
			return matches[0], true
		}
	}

	// Best effort: whatever the solution statically declared.
	return candidate, true
}
