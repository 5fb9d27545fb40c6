package ports

import (
	"context"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// SessionStore persists walkthrough state between requests, enabling
// stop-and-resume sessions across processes.
type SessionStore interface {
	// Save persists the state for a given session id.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session id.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session id.
	Delete(ctx context.Context, sessionID string) error
}
