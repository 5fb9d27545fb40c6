package dsl

import (
	"testing"

	"github.com/KelvinH2322/coffeehelper/internal/validator"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

func TestBuilder_SimpleGraph(t *testing.T) {
	b := New()

	b.Question(domain.EntryPointID, "What's wrong?").
		Option("It leaks", "sol-tighten").
		Option("It's noisy", "sol-descale")

	b.Solution("sol-tighten", "Tighten the group head").
		Description("A loose group head is the usual culprit.")

	b.Solution("sol-descale", "Descale the machine").
		Guide("guide-002").
		ProfessionalHelp()

	store, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if got := len(store.ListAll()); got != 3 {
		t.Fatalf("expected 3 steps, got %d", got)
	}

	step, err := store.Get(domain.EntryPointID)
	if err != nil {
		t.Fatalf("Get entry: %v", err)
	}
	q, ok := step.(domain.Question)
	if !ok {
		t.Fatalf("entry is %T, want Question", step)
	}
	if len(q.Options) != 2 || q.Options[1].NextStepID != "sol-descale" {
		t.Errorf("unexpected options: %+v", q.Options)
	}

	step, _ = store.Get("sol-descale")
	sol := step.(domain.Solution)
	if !sol.ProfessionalHelp || sol.GuideID != "guide-002" {
		t.Errorf("unexpected solution: %+v", sol)
	}
}

func TestBuilder_PreservesInsertionOrder(t *testing.T) {
	b := New()
	b.Solution(domain.EntryPointID, "Entry")
	b.Solution("sol-b", "B")
	b.Solution("sol-a", "A")

	store, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	want := []string{domain.EntryPointID, "sol-b", "sol-a"}
	for i, s := range store.ListAll() {
		if s.StepID() != want[i] {
			t.Errorf("position %d: got %q, want %q", i, s.StepID(), want[i])
		}
	}
}

func TestBuilder_DuplicateID(t *testing.T) {
	b := New()
	b.Solution("sol-x", "First")
	b.Solution("sol-x", "Second")

	if _, err := b.Build(); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestBuilder_CustomEntryPoint(t *testing.T) {
	b := New().EntryPoint("q-root")
	b.Question("q-root", "Root?").Option("go", "sol-leaf")
	b.Solution("sol-leaf", "Leaf")

	store, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if store.EntryPointID() != "q-root" {
		t.Errorf("EntryPointID = %q", store.EntryPointID())
	}

	report := validator.Validate(store, memory.NewCatalog())
	if !report.OK() {
		t.Errorf("graph should validate cleanly: %+v", report.Findings)
	}
}

func TestBuilder_DanglingTargetIsAllowed(t *testing.T) {
	b := New()
	b.Question(domain.EntryPointID, "Q?").Option("go", "sol-later")

	store, err := b.Build()
	if err != nil {
		t.Fatalf("dangling targets must not fail the build: %v", err)
	}

	report := validator.Validate(store, memory.NewCatalog())
	if report.OK() {
		t.Error("validator should flag the dangling target")
	}
}
