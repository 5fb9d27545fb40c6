package ports

import "github.com/KelvinH2322/coffeehelper/pkg/domain"

// StepStore holds the troubleshooting step graph. Editing is single-writer:
// implementations must give readers a consistent snapshot while Upsert/Delete
// hold an exclusive lock, but no cross-mutation coordination is expected.
type StepStore interface {
	// Get returns the step with the given id, or domain.ErrStepNotFound.
	Get(id string) (domain.Step, error)

	// Upsert inserts the step if its id is new, or replaces it in place.
	// Replacing a step with a different kind fails with
	// *domain.ImmutableFieldError; ids are immutable by construction.
	Upsert(step domain.Step) error

	// Delete removes the step with the given id. It fails with
	// *domain.DependencyError while any question option still targets id,
	// and with *domain.EntryPointError when id is the entry point and the
	// store holds more than one step.
	Delete(id string) error

	// ListAll returns every step in insertion order.
	ListAll() []domain.Step

	// EntryPointID returns the designated entry-point id for this store.
	EntryPointID() string
}
