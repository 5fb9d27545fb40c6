package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/KelvinH2322/coffeehelper/internal/logging"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// lockEntry holds the per-session mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager coordinates persisted sessions: it serializes access per session id
// and garbage-collects unused locks via reference counting. The step graph is
// shared read-only across sessions.
type Manager struct {
	steps    ports.StepStore
	sessions ports.SessionStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for internal events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over the given stores.
func NewManager(steps ports.StepStore, sessions ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		steps:    steps,
		sessions: sessions,
		locks:    make(map[string]*lockEntry),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a new session at the entry point and persists it.
// It returns the generated session id.
func (m *Manager) Start(ctx context.Context, machine *domain.Machine) (string, *domain.State, error) {
	sessionID := uuid.NewString()
	state := domain.NewState(m.steps.EntryPointID())
	if machine != nil {
		copied := *machine
		state.Machine = &copied
	}

	if err := m.sessions.Save(ctx, sessionID, state); err != nil {
		return "", nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.logger.Debug("session started", "session_id", sessionID, "entry", state.Current)
	return sessionID, state, nil
}

// Load retrieves an existing session's state.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.withLock(sessionID, func() error {
		var err error
		state, err = m.sessions.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Update loads the session, applies fn to a hydrated Session, and persists the
// result. All walkthrough transitions (answer/back/restart) go through here so
// concurrent requests for the same session cannot interleave.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(*Session)) (*domain.State, error) {
	var state *domain.State
	err := m.withLock(sessionID, func() error {
		loaded, err := m.sessions.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		sess := Hydrate(m.steps, loaded)
		fn(sess)
		state = sess.State()

		return m.sessions.Save(ctx, sessionID, state)
	})
	return state, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.withLock(sessionID, func() error {
		return m.sessions.Delete(ctx, sessionID)
	})
}

// Steps returns the shared step store.
func (m *Manager) Steps() ports.StepStore {
	return m.steps
}

func (m *Manager) withLock(sessionID string, fn func() error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn()
}

func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}
