package memory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

func TestStepStore_UpsertInsertsAndReplaces(t *testing.T) {
	store := memory.NewStepStore()

	q := domain.Question{ID: "q-1", Text: "First?"}
	require.NoError(t, store.Upsert(q))
	assert.Len(t, store.ListAll(), 1)

	// Replacing the same id must not grow the store.
	q.Text = "First, updated?"
	require.NoError(t, store.Upsert(q))
	assert.Len(t, store.ListAll(), 1)

	got, err := store.Get("q-1")
	require.NoError(t, err)
	assert.Equal(t, "First, updated?", got.(domain.Question).Text)
}

func TestStepStore_UpsertRejectsKindChange(t *testing.T) {
	store := memory.NewStepStore()
	require.NoError(t, store.Upsert(domain.Question{ID: "step-a", Text: "?"}))

	err := store.Upsert(domain.Solution{ID: "step-a", Title: "Now a solution"})

	var immutable *domain.ImmutableFieldError
	require.ErrorAs(t, err, &immutable)
	assert.Equal(t, domain.KindQuestion, immutable.From)
	assert.Equal(t, domain.KindSolution, immutable.To)

	// The original step must be untouched.
	got, err := store.Get("step-a")
	require.NoError(t, err)
	assert.Equal(t, domain.KindQuestion, got.Kind())
}

func TestStepStore_DeleteBlockedByReference(t *testing.T) {
	store := memory.NewStepStore()
	require.NoError(t, store.Upsert(domain.Question{
		ID:      domain.EntryPointID,
		Text:    "Symptom?",
		Options: []domain.Option{{Text: "Leak", NextStepID: "sol-leak"}},
	}))
	require.NoError(t, store.Upsert(domain.Solution{ID: "sol-leak", Title: "Fix the leak"}))

	err := store.Delete("sol-leak")
	var dep *domain.DependencyError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, []string{domain.EntryPointID}, dep.ReferencedBy)

	// Removing the reference unblocks the delete.
	require.NoError(t, store.Upsert(domain.Question{ID: domain.EntryPointID, Text: "Symptom?"}))
	require.NoError(t, store.Delete("sol-leak"))
	assert.Len(t, store.ListAll(), 1)
}

func TestStepStore_DeleteProtectsEntryPoint(t *testing.T) {
	store := memory.NewStepStore()
	require.NoError(t, store.Upsert(domain.Question{ID: domain.EntryPointID, Text: "Symptom?"}))
	require.NoError(t, store.Upsert(domain.Solution{ID: "sol-x", Title: "X"}))

	var entry *domain.EntryPointError
	require.ErrorAs(t, store.Delete(domain.EntryPointID), &entry)

	// Once it is the sole step, the entry point may go.
	require.NoError(t, store.Delete("sol-x"))
	require.NoError(t, store.Delete(domain.EntryPointID))
	assert.Empty(t, store.ListAll())
}

func TestStepStore_DeleteUnknown(t *testing.T) {
	store := memory.NewStepStore()
	assert.True(t, errors.Is(store.Delete("ghost"), domain.ErrStepNotFound))
}

func TestStepStore_ListAllKeepsInsertionOrder(t *testing.T) {
	store := memory.NewStepStore()
	ids := []string{"c-step", "a-step", "b-step"}
	for _, id := range ids {
		require.NoError(t, store.Upsert(domain.Solution{ID: id, Title: id}))
	}

	var got []string
	for _, s := range store.ListAll() {
		got = append(got, s.StepID())
	}
	assert.Equal(t, ids, got)
}

func TestStepStore_CustomEntryPoint(t *testing.T) {
	store := memory.NewStepStore(memory.WithEntryPoint("root"))
	assert.Equal(t, "root", store.EntryPointID())

	require.NoError(t, store.Upsert(domain.Question{ID: "root", Text: "?"}))
	require.NoError(t, store.Upsert(domain.Solution{ID: "sol", Title: "S"}))

	var entry *domain.EntryPointError
	require.ErrorAs(t, store.Delete("root"), &entry)
}
