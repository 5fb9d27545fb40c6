package domain

// State is the snapshot of one walkthrough session: the step the user is at
// and the trail of previously visited steps for back-navigation. It holds
// back-references only; step data stays owned by the store.
type State struct {
	// Current is the id of the active step.
	Current string `json:"current"`

	// History is the stack of previously visited step ids, oldest first.
	History []string `json:"history"`

	// Machine is the machine selected for this session, nil if none.
	Machine *Machine `json:"machine,omitempty"`

	// Sealed carries an opaque encrypted envelope when store-level
	// encryption is enabled. A sealed state has no other fields set.
	Sealed string `json:"sealed,omitempty"`
}

// NewState creates a fresh state positioned at the entry point.
func NewState(entryPointID string) *State {
	return &State{Current: entryPointID}
}

// Clone returns a copy safe for independent mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = append([]string(nil), s.History...)
	if s.Machine != nil {
		m := *s.Machine
		next.Machine = &m
	}
	return &next
}
