/*
Package domain contains the core domain models for the troubleshooting engine.

It defines the step graph entities (Question, Solution, Option), the instruction
guide catalog types, the validation report, and the error taxonomy. This package
is kept pure and free of I/O or persistence concerns.

# Key Entities

  - Step: sealed union of Question (branching) and Solution (leaf).
  - Guide: a maintenance/repair/cleaning instruction guide with its steps.
  - Machine: the user's selected coffee machine (nil means no selection).
  - Report: the outcome of a validation pass, graded by severity.
*/
package domain
