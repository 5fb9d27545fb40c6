/*
Package coffeehelper is a decision-tree troubleshooting engine for coffee
machines: a graph of questions and solutions, validated for consistency,
rendered as a tree or walked interactively, with repair guides resolved per
machine model.

# Concept

The troubleshooting content is a directed graph of steps. A question step
presents options; each option points at the next step. A solution step is a
leaf that describes a fix and may link an instruction guide. The engine keeps
the graph editable at runtime (admin tooling), checks it for dangling
references and unreachable steps, and drives user sessions through it.

# Key Features

  - Editable step graph with referential-integrity guardrails on delete.
  - Validator that reports problems as data, never panics on bad graphs.
  - Pure tree renderer with per-path cycle detection.
  - Guide resolution by machine brand/model specificity, falling back to
    generic guides.
  - Persistent walkthrough sessions (in-memory or Redis backed).

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/KelvinH2322/coffeehelper"
	)

	func main() {
		// Empty dir: built-in demo dataset.
		eng, err := coffeehelper.New("")
		if err != nil {
			log.Fatal(err)
		}

		report := eng.Validate()
		for _, f := range report.Findings {
			fmt.Println(f)
		}

		sess := eng.NewSession()
		step, _ := sess.Current()
		fmt.Println("start at:", step.StepID())
	}
*/
package coffeehelper
