// Package tree builds the nested presentation structure of a step graph for
// visualization (admin tree views, the graph command).
package tree

import (
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/guides"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// NodeKind classifies a rendered node.
type NodeKind string

const (
	// NodeContent carries a step's displayable fields.
	NodeContent NodeKind = "content"
	// NodeCycle marks a step already present on the current path. Terminal.
	NodeCycle NodeKind = "cycle"
	// NodeMissing marks a step id that does not resolve in the store. Terminal.
	NodeMissing NodeKind = "missing"
)

// Node is one rendered step. Cycle and missing nodes carry only the StepID.
type Node struct {
	Kind   NodeKind `json:"kind"`
	StepID string   `json:"step_id"`

	// Content fields, set when Kind == NodeContent.
	StepKind         domain.StepKind `json:"step_kind,omitempty"`
	Text             string          `json:"text,omitempty"`
	Description      string          `json:"description,omitempty"`
	ProfessionalHelp bool            `json:"professional_help,omitempty"`
	Guide            *domain.Guide   `json:"guide,omitempty"`

	// Branches holds one entry per question option, in display order.
	Branches []Branch `json:"branches,omitempty"`
}

// Branch pairs an option with its rendered subtree.
type Branch struct {
	Option domain.Option `json:"option"`
	Child  *Node         `json:"child"`
}

// Render walks the graph from rootID and produces the presentation tree.
//
// It is a pure function of the store contents and rootID: no side effects, no
// memoization, cheap enough to rerun after every edit. Cycle detection makes
// it terminate on any graph: the set of ancestor ids is copied into each
// branch, so a step may appear on two sibling paths but revisiting an ancestor
// yields a terminal cycle node. A nil machine renders guides as declared.
func Render(store ports.StepStore, catalog ports.GuideCatalog, rootID string, machine *domain.Machine) *Node {
	return renderStep(store, catalog, rootID, machine, map[string]bool{})
}

func renderStep(store ports.StepStore, catalog ports.GuideCatalog, id string, machine *domain.Machine, path map[string]bool) *Node {
	if path[id] {
		return &Node{Kind: NodeCycle, StepID: id}
	}

	step, err := store.Get(id)
	if err != nil {
		return &Node{Kind: NodeMissing, StepID: id}
	}

	node := &Node{Kind: NodeContent, StepID: id, StepKind: step.Kind()}

	switch s := step.(type) {
	case domain.Question:
		node.Text = s.Text
		node.Branches = make([]Branch, 0, len(s.Options))
		for _, opt := range s.Options {
			child := renderStep(store, catalog, opt.NextStepID, machine, withAncestor(path, id))
			node.Branches = append(node.Branches, Branch{Option: opt, Child: child})
		}
	case domain.Solution:
		node.Text = s.Title
		node.Description = s.Description
		node.ProfessionalHelp = s.ProfessionalHelp
		if g, ok := guides.Resolve(catalog, s.GuideID, machine); ok {
			node.Guide = &g
		}
	}

	return node
}

// withAncestor copies the path set and adds id. Each branch gets its own copy
// so siblings never see each other's ancestors as visited.
func withAncestor(path map[string]bool, id string) map[string]bool {
	next := make(map[string]bool, len(path)+1)
	for k := range path {
		next[k] = true
	}
	next[id] = true
	return next
}
