package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStepNotFound is returned when a step id does not resolve in the store.
var ErrStepNotFound = errors.New("step not found")

// ErrGuideNotFound is returned when a guide id does not resolve in the catalog.
var ErrGuideNotFound = errors.New("guide not found")

// ErrSessionNotFound is returned when a session id cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ImmutableFieldError rejects an upsert that tries to change a step's kind.
// Ids are immutable by construction (the id is the map key), so kind is the
// only field this can fire on.
type ImmutableFieldError struct {
	ID   string
	From StepKind
	To   StepKind
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("step %q: kind is immutable (cannot change %s to %s)", e.ID, e.From, e.To)
}

// DependencyError blocks a delete while other questions still reference the
// target. ReferencedBy lists the offending question ids so the caller can
// report them.
type DependencyError struct {
	ID           string
	ReferencedBy []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %q is still referenced by: %s", e.ID, strings.Join(e.ReferencedBy, ", "))
}

// EntryPointError blocks deleting the entry point while other steps exist.
type EntryPointError struct {
	ID string
}

func (e *EntryPointError) Error() string {
	return fmt.Sprintf("step %q is the entry point and cannot be deleted while other steps exist", e.ID)
}
