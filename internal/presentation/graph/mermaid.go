// Package graph renders the step graph as a Mermaid flowchart for
// inspection and documentation.
package graph

import (
	"fmt"
	"strings"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// Overlay carries walkthrough state to highlight on the graph.
type Overlay struct {
	VisitedSteps []string
	CurrentStep  string
}

// GenerateMermaid produces Mermaid flowchart syntax for the whole store.
// It applies semantic styling:
//   - entry point: ((Circle))
//   - question: [/Parallelogram/]
//   - solution: [Rectangle]
//   - missing option target: dashed placeholder node
//
// Overlay styles (visited/current) are appended if an overlay is given.
func GenerateMermaid(store ports.StepStore, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	steps := store.ListAll()
	known := make(map[string]bool, len(steps))
	for _, s := range steps {
		known[s.StepID()] = true
	}

	entry := store.EntryPointID()
	missing := make(map[string]bool)

	for _, step := range steps {
		safeID := sanitizeMermaidID(step.StepID())

		opener, closer := "[", "]"
		label := step.StepID()
		switch s := step.(type) {
		case domain.Question:
			opener, closer = "[/", "/]"
			label = s.Text
		case domain.Solution:
			label = s.Title
		}
		if step.StepID() == entry {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(label), closer))

		q, ok := step.(domain.Question)
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			safeTo := sanitizeMermaidID(opt.NextStepID)
			arrow := fmt.Sprintf("-- \"%s\" -->", escapeMermaidLabel(opt.Text))
			if !known[opt.NextStepID] {
				// Dangling target: dotted edge into a dashed placeholder.
				arrow = fmt.Sprintf("-. \"%s\" .->", escapeMermaidLabel(opt.Text))
				missing[opt.NextStepID] = true
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if len(missing) > 0 {
		sb.WriteString("\n    %% Missing targets\n")
		sb.WriteString("    classDef missing stroke-dasharray: 5 5,stroke:#b71c1c,color:#000;\n")
		for _, step := range steps {
			q, ok := step.(domain.Question)
			if !ok {
				continue
			}
			for _, opt := range q.Options {
				if missing[opt.NextStepID] {
					safeTo := sanitizeMermaidID(opt.NextStepID)
					sb.WriteString(fmt.Sprintf("    %s[\"%s (missing)\"]\n", safeTo, escapeMermaidLabel(opt.NextStepID)))
					sb.WriteString(fmt.Sprintf("    class %s missing;\n", safeTo))
					delete(missing, opt.NextStepID)
				}
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedSteps {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentStep != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
