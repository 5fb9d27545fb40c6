// Package session drives one interactive troubleshooting walkthrough:
// the user answers questions until a solution is reached, with back-navigation
// and restart at any point.
package session

import (
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// Session is the stateful control loop over a step graph. It holds
// back-references only (step ids); the store owns the step data.
//
// A solution is a valid resting state, not a terminal one: the user may still
// go back or restart. If the store is edited underneath a live session,
// Current returns domain.ErrStepNotFound and Restart is the only escape.
type Session struct {
	store ports.StepStore
	state *domain.State
}

// New creates a session positioned at the store's entry point.
func New(store ports.StepStore) *Session {
	return &Session{
		store: store,
		state: domain.NewState(store.EntryPointID()),
	}
}

// Hydrate creates a session over previously persisted state.
func Hydrate(store ports.StepStore, state *domain.State) *Session {
	if state == nil {
		return New(store)
	}
	return &Session{store: store, state: state.Clone()}
}

// State returns a copy of the session state for persistence.
func (s *Session) State() *domain.State {
	return s.state.Clone()
}

// Current resolves the active step in the store.
// A dangling current id (store mutated mid-session) is reported as
// domain.ErrStepNotFound; the session itself stays usable.
func (s *Session) Current() (domain.Step, error) {
	return s.store.Get(s.state.Current)
}

// Machine returns the machine selected for this session, nil if none.
func (s *Session) Machine() *domain.Machine {
	return s.state.Machine
}

// SelectMachine records the user's machine for guide resolution.
// A nil machine clears the selection.
func (s *Session) SelectMachine(m *domain.Machine) {
	if m == nil {
		s.state.Machine = nil
		return
	}
	copied := *m
	s.state.Machine = &copied
}

// Answer follows the option at the given index of the current question.
// It is a no-op when the current step is not a question, cannot be resolved,
// or the index is out of range; options are offered straight from the step,
// so a bad index is a caller bug, not a user error.
func (s *Session) Answer(optionIndex int) {
	step, err := s.Current()
	if err != nil {
		return
	}
	q, ok := step.(domain.Question)
	if !ok {
		return
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return
	}

	s.state.History = append(s.state.History, s.state.Current)
	s.state.Current = q.Options[optionIndex].NextStepID
}

// Back pops the most recent step off the history. No-op on empty history.
func (s *Session) Back() {
	n := len(s.state.History)
	if n == 0 {
		return
	}
	s.state.Current = s.state.History[n-1]
	s.state.History = s.state.History[:n-1]
}

// Restart resets the session to the entry point and clears the history.
// The machine selection is kept.
func (s *Session) Restart() {
	s.state.Current = s.store.EntryPointID()
	s.state.History = nil
}

// CanGoBack reports whether Back would move.
func (s *Session) CanGoBack() bool {
	return len(s.state.History) > 0
}
