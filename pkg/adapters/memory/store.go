// Package memory provides the in-memory implementations of the storage ports.
// It is the default backend for tests, demos, and the CLI.
package memory

import (
	"sync"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// StepStore implements ports.StepStore with a mutex-guarded map.
// Readers observe a consistent snapshot; mutations are exclusive.
type StepStore struct {
	mu         sync.RWMutex
	steps      map[string]domain.Step
	order      []string // insertion order for ListAll
	entryPoint string
}

// StoreOption configures a StepStore.
type StoreOption func(*StepStore)

// WithEntryPoint overrides the designated entry-point id.
func WithEntryPoint(id string) StoreOption {
	return func(s *StepStore) {
		s.entryPoint = id
	}
}

// NewStepStore creates an empty store with the conventional entry point.
func NewStepStore(opts ...StoreOption) *StepStore {
	s := &StepStore{
		steps:      make(map[string]domain.Step),
		entryPoint: domain.EntryPointID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the step with the given id.
func (s *StepStore) Get(id string) (domain.Step, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	step, ok := s.steps[id]
	if !ok {
		return nil, domain.ErrStepNotFound
	}
	return step, nil
}

// Upsert inserts or replaces a step. The kind of an existing step is immutable.
func (s *StepStore) Upsert(step domain.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := step.StepID()
	if existing, ok := s.steps[id]; ok {
		if existing.Kind() != step.Kind() {
			return &domain.ImmutableFieldError{ID: id, From: existing.Kind(), To: step.Kind()}
		}
		s.steps[id] = step
		return nil
	}

	s.steps[id] = step
	s.order = append(s.order, id)
	return nil
}

// Delete removes a step, subject to the dependency and entry-point guards.
func (s *StepStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.steps[id]; !ok {
		return domain.ErrStepNotFound
	}

	var referencedBy []string
	for _, orderID := range s.order {
		q, ok := s.steps[orderID].(domain.Question)
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.NextStepID == id && q.ID != id {
				referencedBy = append(referencedBy, q.ID)
				break
			}
		}
	}
	if len(referencedBy) > 0 {
		return &domain.DependencyError{ID: id, ReferencedBy: referencedBy}
	}

	if id == s.entryPoint && len(s.steps) > 1 {
		return &domain.EntryPointError{ID: id}
	}

	delete(s.steps, id)
	for i, orderID := range s.order {
		if orderID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListAll returns every step in insertion order.
func (s *StepStore) ListAll() []domain.Step {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Step, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.steps[id])
	}
	return out
}

// EntryPointID returns the designated entry-point id.
func (s *StepStore) EntryPointID() string {
	return s.entryPoint
}
