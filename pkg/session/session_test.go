package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/session"
)

func seededSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New(memory.SeededStepStore())
}

func currentID(t *testing.T, s *session.Session) string {
	t.Helper()
	step, err := s.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	return step.StepID()
}

func TestSession_StartsAtEntryPoint(t *testing.T) {
	s := seededSession(t)
	if got := currentID(t, s); got != domain.EntryPointID {
		t.Errorf("expected %s, got %s", domain.EntryPointID, got)
	}
	if s.CanGoBack() {
		t.Error("fresh session must have empty history")
	}
}

func TestSession_AnswerAdvancesAndPushesHistory(t *testing.T) {
	s := seededSession(t)

	s.Answer(0) // "Machine is leaking water"
	if got := currentID(t, s); got != "q-leak-location" {
		t.Fatalf("expected q-leak-location, got %s", got)
	}
	if !s.CanGoBack() {
		t.Error("history must contain the entry point")
	}

	s.Answer(0) // "Group head"
	if got := currentID(t, s); got != "sol-leak-grouphead" {
		t.Errorf("expected sol-leak-grouphead, got %s", got)
	}
}

func TestSession_AnswerIgnoresBadIndex(t *testing.T) {
	s := seededSession(t)

	s.Answer(99)
	s.Answer(-1)
	if got := currentID(t, s); got != domain.EntryPointID {
		t.Errorf("out-of-range answers must be no-ops, got %s", got)
	}
}

func TestSession_AnswerOnSolutionIsNoOp(t *testing.T) {
	s := seededSession(t)
	s.Answer(3) // straight to sol-power-check
	s.Answer(0)
	if got := currentID(t, s); got != "sol-power-check" {
		t.Errorf("answering on a solution must not move, got %s", got)
	}
}

func TestSession_BackWalksHistory(t *testing.T) {
	s := seededSession(t)
	s.Answer(0)
	s.Answer(0)

	s.Back()
	if got := currentID(t, s); got != "q-leak-location" {
		t.Errorf("expected q-leak-location after back, got %s", got)
	}
	s.Back()
	if got := currentID(t, s); got != domain.EntryPointID {
		t.Errorf("expected entry point after second back, got %s", got)
	}

	// Back on empty history is a no-op.
	s.Back()
	if got := currentID(t, s); got != domain.EntryPointID {
		t.Errorf("back on empty history moved to %s", got)
	}
}

func TestSession_RestartClearsHistoryKeepsMachine(t *testing.T) {
	s := seededSession(t)
	s.SelectMachine(&domain.Machine{ID: "machine-003", Brand: "Gaggia", Model: "Classic Pro"})
	s.Answer(0)
	s.Answer(1)

	s.Restart()
	if got := currentID(t, s); got != domain.EntryPointID {
		t.Errorf("expected entry point after restart, got %s", got)
	}
	if s.CanGoBack() {
		t.Error("restart must clear the history")
	}
	if s.Machine() == nil || s.Machine().Brand != "Gaggia" {
		t.Error("restart must keep the machine selection")
	}
}

func TestSession_DanglingCurrentIsRecoverable(t *testing.T) {
	store := memory.SeededStepStore()
	s := session.New(store)
	s.Answer(0) // at q-leak-location, history holds symptom-start

	// Admin edit: retarget the entry option, then drop the question.
	_ = store.Upsert(domain.Question{ID: domain.EntryPointID, Text: "Symptom?"})
	if err := store.Delete("q-leak-location"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := s.Current(); !errors.Is(err, domain.ErrStepNotFound) {
		t.Fatalf("expected ErrStepNotFound, got %v", err)
	}

	// The session is stuck but not broken; restart recovers it.
	s.Restart()
	if _, err := s.Current(); err != nil {
		t.Errorf("restart must recover the session, got %v", err)
	}
}

func TestManager_StartUpdateLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.SeededStepStore(), memory.NewSessionStore())

	id, state, err := mgr.Start(ctx, &domain.Machine{ID: "machine-001", Brand: "Breville", Model: "Barista Express"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if state.Current != domain.EntryPointID {
		t.Errorf("expected entry point, got %s", state.Current)
	}

	state, err = mgr.Update(ctx, id, func(s *session.Session) { s.Answer(1) })
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if state.Current != "q-no-coffee-water" {
		t.Errorf("expected q-no-coffee-water, got %s", state.Current)
	}

	// State survives a reload.
	loaded, err := mgr.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Current != "q-no-coffee-water" || loaded.Machine == nil {
		t.Errorf("persisted state incomplete: %+v", loaded)
	}

	if err := mgr.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := mgr.Load(ctx, id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestManager_StartClonesMachine(t *testing.T) {
	mgr := session.NewManager(memory.SeededStepStore(), memory.NewSessionStore())

	machine := &domain.Machine{ID: "machine-003", Brand: "Gaggia", Model: "Classic Pro"}
	_, state, err := mgr.Start(context.Background(), machine)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if state.Machine == machine {
		t.Fatal("Start must not alias the caller's machine")
	}

	machine.Model = "Classic Evo"
	if state.Machine.Model != "Classic Pro" {
		t.Errorf("caller mutation leaked into the session: %+v", state.Machine)
	}
}

func TestManager_UnknownSession(t *testing.T) {
	mgr := session.NewManager(memory.SeededStepStore(), memory.NewSessionStore())
	_, err := mgr.Update(context.Background(), "ghost", func(s *session.Session) { s.Answer(0) })
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.SeededStepStore(), memory.NewSessionStore())
	id, _, err := mgr.Start(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = mgr.Update(ctx, id, func(s *session.Session) {
				s.Answer(0)
				s.Back()
			})
		}()
	}
	wg.Wait()

	state, err := mgr.Load(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	// Every update is answer-then-back, so the net position is unchanged.
	if state.Current != domain.EntryPointID || len(state.History) != 0 {
		t.Errorf("interleaved updates corrupted state: %+v", state)
	}
}
