// Package validator runs the integrity checks over a step graph.
package validator

import (
	"fmt"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

// Validate crawls the step graph and returns a report of every finding.
// The checks are computed independently (no short-circuiting) and never
// mutate the store:
//
//  1. entry-point presence (error)
//  2. per-question dangling option targets (error)
//  3. per-solution dangling guide references (warning)
//  4. reachability from the entry point (orphans are warnings)
//
// An empty store yields a single informational finding instead of the
// entry-point error, since there is nothing to validate yet.
func Validate(store ports.StepStore, catalog ports.GuideCatalog) domain.Report {
	steps := store.ListAll()
	if len(steps) == 0 {
		return domain.Report{Findings: []domain.Finding{{
			Severity: domain.SeverityInfo,
			Code:     domain.FindingEmptyStore,
			Message:  "nothing to validate: the store holds no steps",
		}}}
	}

	known := make(map[string]domain.Step, len(steps))
	for _, s := range steps {
		known[s.StepID()] = s
	}

	var findings []domain.Finding

	entry := store.EntryPointID()
	if _, ok := known[entry]; !ok {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityError,
			Code:     domain.FindingMissingEntryPoint,
			TargetID: entry,
			Message:  fmt.Sprintf("no step has the entry-point id %q", entry),
		})
	}

	for _, s := range steps {
		switch step := s.(type) {
		case domain.Question:
			for _, opt := range step.Options {
				if _, ok := known[opt.NextStepID]; !ok {
					findings = append(findings, domain.Finding{
						Severity: domain.SeverityError,
						Code:     domain.FindingDanglingOption,
						StepID:   step.ID,
						TargetID: opt.NextStepID,
						Message:  fmt.Sprintf("option %q targets missing step %q", opt.Text, opt.NextStepID),
					})
				}
			}
		case domain.Solution:
			if step.GuideID == "" {
				continue
			}
			if _, err := catalog.Lookup(step.GuideID); err != nil {
				findings = append(findings, domain.Finding{
					Severity: domain.SeverityWarning,
					Code:     domain.FindingDanglingGuide,
					StepID:   step.ID,
					TargetID: step.GuideID,
					Message:  fmt.Sprintf("guide %q is not in the catalog", step.GuideID),
				})
			}
		}
	}

	reachable := reachableFrom(known, entry)
	for _, s := range steps {
		if !reachable[s.StepID()] {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Code:     domain.FindingOrphanStep,
				StepID:   s.StepID(),
				Message:  "step is not reachable from the entry point (possible orphan)",
			})
		}
	}

	return domain.Report{Findings: findings}
}

// reachableFrom does a breadth-first crawl following question options only;
// solutions are leaves and do not propagate reachability.
func reachableFrom(known map[string]domain.Step, entry string) map[string]bool {
	visited := make(map[string]bool)
	if _, ok := known[entry]; !ok {
		return visited
	}

	queue := []string{entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		q, ok := known[id].(domain.Question)
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if _, exists := known[opt.NextStepID]; exists && !visited[opt.NextStepID] {
				queue = append(queue, opt.NextStepID)
			}
		}
	}
	return visited
}
