/*
Package dsl provides a fluent builder for constructing troubleshooting step
graphs programmatically.

It lets developers define decision trees with a type-safe builder pattern
instead of YAML files. This is particularly useful for dynamic graph
generation, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/KelvinH2322/coffeehelper/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Question("symptom-start", "What's wrong?").
			Option("It leaks", "sol-tighten").
			Option("It's noisy", "sol-descale")

		b.Solution("sol-tighten", "Tighten the group head").
			Description("A loose group head is the usual culprit.")

		b.Solution("sol-descale", "Descale the machine").
			Guide("guide-002").
			ProfessionalHelp()

		store, err := b.Build()
		// ... store satisfies ports.StepStore
		_ = store
		_ = err
	}
*/
package dsl
