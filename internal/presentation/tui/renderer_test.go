package tui

import (
	"strings"
	"testing"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

func TestQuestionMarkdown(t *testing.T) {
	q := domain.Question{
		Text: "Where is the leak?",
		Options: []domain.Option{
			{Text: "Group head"},
			{Text: "Steam wand"},
		},
	}

	got := QuestionMarkdown(q)
	for _, want := range []string{"## Where is the leak?", "1. Group head", "2. Steam wand"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestSolutionMarkdown(t *testing.T) {
	s := domain.Solution{Title: "Descale", Description: "Run a descaling cycle.", ProfessionalHelp: true}
	g := domain.Guide{
		Title:        "Descaling Your Machine",
		Category:     domain.CategoryMaintenance,
		MachineBrand: domain.GenericMachine,
		MachineModel: domain.GenericMachine,
		Summary:      "Remove scale buildup.",
		Tools:        []string{"Descaling solution"},
		SafetyAlerts: []string{"Let the machine cool down."},
		Steps: []domain.GuideStep{
			{Title: "Mix", Description: "Mix solution with water."},
		},
	}

	got := SolutionMarkdown(s, &g)
	for _, want := range []string{
		"## Descale",
		"professional service",
		"# Descaling Your Machine",
		"Descaling solution",
		"Let the machine cool down.",
		"1. **Mix**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	if got := SolutionMarkdown(domain.Solution{Title: "X", Description: "Y"}, nil); strings.Contains(got, "---") {
		t.Errorf("no guide separator expected without a guide:\n%s", got)
	}
}

func TestNewRendererProducesOutput(t *testing.T) {
	render := NewRenderer()
	out, err := render("# hello")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("rendered output should carry the text, got %q", out)
	}
}
