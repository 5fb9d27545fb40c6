package graph_test

import (
	"strings"
	"testing"

	"github.com/KelvinH2322/coffeehelper/internal/presentation/graph"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

func buildStore(t *testing.T, steps ...domain.Step) *memory.StepStore {
	t.Helper()
	store := memory.NewStepStore()
	for _, s := range steps {
		if err := store.Upsert(s); err != nil {
			t.Fatalf("Upsert(%s): %v", s.StepID(), err)
		}
	}
	return store
}

func TestGenerateMermaid_Shapes(t *testing.T) {
	store := buildStore(t,
		domain.Question{
			ID:   domain.EntryPointID,
			Text: "What's wrong?",
			Options: []domain.Option{
				{Text: "It leaks", NextStepID: "sol-fix"},
			},
		},
		domain.Solution{ID: "sol-fix", Title: "Tighten it"},
	)

	got := graph.GenerateMermaid(store, nil)

	for _, want := range []string{
		"graph TD",
		`symptom_start(("What's wrong?"))`,
		`sol_fix["Tighten it"]`,
		`symptom_start -- "It leaks" --> sol_fix`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestGenerateMermaid_DanglingTarget(t *testing.T) {
	store := buildStore(t,
		domain.Question{
			ID:   domain.EntryPointID,
			Text: "Q",
			Options: []domain.Option{
				{Text: "go", NextStepID: "sol-nowhere"},
			},
		},
	)

	got := graph.GenerateMermaid(store, nil)

	for _, want := range []string{
		`symptom_start -. "go" .-> sol_nowhere`,
		`sol_nowhere["sol-nowhere (missing)"]`,
		"class sol_nowhere missing;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	store := buildStore(t,
		domain.Question{
			ID:   domain.EntryPointID,
			Text: "Q",
			Options: []domain.Option{
				{Text: "go", NextStepID: "sol-done"},
			},
		},
		domain.Solution{ID: "sol-done", Title: "Done"},
	)

	got := graph.GenerateMermaid(store, &graph.Overlay{
		VisitedSteps: []string{domain.EntryPointID, domain.EntryPointID},
		CurrentStep:  "sol-done",
	})

	if strings.Count(got, "class symptom_start visited;") != 1 {
		t.Errorf("visited nodes should be deduplicated:\n%s", got)
	}
	if !strings.Contains(got, "class sol_done current;") {
		t.Errorf("missing current overlay in:\n%s", got)
	}
}

func TestGenerateMermaid_LabelEscaping(t *testing.T) {
	store := buildStore(t,
		domain.Question{
			ID:   domain.EntryPointID,
			Text: `Does it say "E01"?`,
			Options: []domain.Option{
				{Text: `Yes, "E01"`, NextStepID: "sol-e01"},
			},
		},
		domain.Solution{ID: "sol-e01", Title: "Reset"},
	)

	got := graph.GenerateMermaid(store, nil)

	if !strings.Contains(got, `(("Does it say 'E01'?"))`) {
		t.Errorf("label quotes should be escaped:\n%s", got)
	}
	if !strings.Contains(got, `-- "Yes, 'E01'" -->`) {
		t.Errorf("edge label quotes should be escaped:\n%s", got)
	}
}
