package dsl

import (
	"fmt"

	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// Builder manages the graph construction. Steps are emitted in the order
// they were first added, matching the store's insertion-order listing.
type Builder struct {
	steps      []stepBuilder
	byID       map[string]int
	entryPoint string
	errs       []error
}

type stepBuilder interface {
	step() domain.Step
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{byID: make(map[string]int)}
}

// EntryPoint overrides the entry-point id (default: domain.EntryPointID).
func (b *Builder) EntryPoint(id string) *Builder {
	b.entryPoint = id
	return b
}

// Question adds a question step. Adding the same id twice is a build error.
func (b *Builder) Question(id, text string) *QuestionBuilder {
	qb := &QuestionBuilder{q: domain.Question{ID: id, Text: text}}
	b.add(id, qb)
	return qb
}

// Solution adds a solution step.
func (b *Builder) Solution(id, title string) *SolutionBuilder {
	sb := &SolutionBuilder{s: domain.Solution{ID: id, Title: title}}
	b.add(id, sb)
	return sb
}

func (b *Builder) add(id string, sb stepBuilder) {
	if id == "" {
		b.errs = append(b.errs, fmt.Errorf("step with empty id"))
		return
	}
	if _, exists := b.byID[id]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate step id %q", id))
		return
	}
	b.byID[id] = len(b.steps)
	b.steps = append(b.steps, sb)
}

// Build compiles the graph into an in-memory step store.
func (b *Builder) Build() (*memory.StepStore, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	var opts []memory.StoreOption
	if b.entryPoint != "" {
		opts = append(opts, memory.WithEntryPoint(b.entryPoint))
	}
	store := memory.NewStepStore(opts...)

	for _, sb := range b.steps {
		if err := store.Upsert(sb.step()); err != nil {
			return nil, fmt.Errorf("failed to build store: %w", err)
		}
	}
	return store, nil
}

// QuestionBuilder provides a fluent API for configuring a question step.
type QuestionBuilder struct {
	q domain.Question
}

// Option appends a selectable answer pointing at the target step.
// The target may be defined later, or not at all: the validator reports
// dangling targets, the builder does not.
func (qb *QuestionBuilder) Option(text, target string) *QuestionBuilder {
	qb.q.Options = append(qb.q.Options, domain.Option{Text: text, NextStepID: target})
	return qb
}

func (qb *QuestionBuilder) step() domain.Step { return qb.q }

// SolutionBuilder provides a fluent API for configuring a solution step.
type SolutionBuilder struct {
	s domain.Solution
}

// Description sets the solution body text.
func (sb *SolutionBuilder) Description(text string) *SolutionBuilder {
	sb.s.Description = text
	return sb
}

// Guide links an instruction guide by id.
func (sb *SolutionBuilder) Guide(guideID string) *SolutionBuilder {
	sb.s.GuideID = guideID
	return sb
}

// ProfessionalHelp flags the solution as likely needing a technician.
func (sb *SolutionBuilder) ProfessionalHelp() *SolutionBuilder {
	sb.s.ProfessionalHelp = true
	return sb
}

func (sb *SolutionBuilder) step() domain.Step { return sb.s }
