// Package tui renders walkthrough content for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// QuestionMarkdown formats a question and its numbered options.
func QuestionMarkdown(q domain.Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, opt.Text)
	}
	return sb.String()
}

// SolutionMarkdown formats a solution, including the resolved guide if any.
func SolutionMarkdown(s domain.Solution, guide *domain.Guide) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n%s\n", s.Title, s.Description)
	if s.ProfessionalHelp {
		sb.WriteString("\n> **Note:** this issue may require professional service.\n")
	}
	if guide != nil {
		sb.WriteString("\n---\n\n")
		sb.WriteString(GuideMarkdown(*guide))
	}
	return sb.String()
}

// GuideMarkdown formats a full instruction guide.
func GuideMarkdown(g domain.Guide) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", g.Title)
	fmt.Fprintf(&sb, "*%s | %s %s*\n\n", g.Category, g.MachineBrand, g.MachineModel)
	fmt.Fprintf(&sb, "%s\n", g.Summary)

	if len(g.SafetyAlerts) > 0 {
		sb.WriteString("\n**Safety:**\n\n")
		for _, alert := range g.SafetyAlerts {
			fmt.Fprintf(&sb, "- ⚠️ %s\n", alert)
		}
	}
	if len(g.Tools) > 0 {
		sb.WriteString("\n**You will need:**\n\n")
		for _, tool := range g.Tools {
			fmt.Fprintf(&sb, "- %s\n", tool)
		}
	}
	if len(g.Steps) > 0 {
		sb.WriteString("\n")
		for i, step := range g.Steps {
			fmt.Fprintf(&sb, "%d. **%s**: %s\n", i+1, step.Title, step.Description)
		}
	}
	return sb.String()
}
