package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation adheres
// to the interface contract. Adapter test suites call this against their
// concrete store.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("SaveAndLoad", func(t *testing.T) {
		state := domain.NewState(domain.EntryPointID)
		state.History = append(state.History, domain.EntryPointID)
		state.Current = "q-leak-location"
		state.Machine = &domain.Machine{ID: "machine-003", Brand: "Gaggia", Model: "Classic Pro"}

		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, state.Current, loaded.Current)
		assert.Equal(t, state.History, loaded.History)
		require.NotNil(t, loaded.Machine)
		assert.Equal(t, "Gaggia", loaded.Machine.Brand)
	})

	t.Run("LoadIsolation", func(t *testing.T) {
		state := domain.NewState(domain.EntryPointID)
		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.History = append(loaded.History, "mutated")

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, again.History, "mutating a loaded state must not leak into the store")
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewState(domain.EntryPointID)))
		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
