/*
Package ports defines the driven ports (interfaces) for the troubleshooting engine.

These interfaces decouple the core logic from storage implementations, allowing
the step graph, guide catalog, and session state to live in memory, sqlite, or
redis without the core knowing.

# Key Interfaces

  - StepStore: holds the editable troubleshooting step graph.
  - GuideCatalog: read-only lookup of instruction guides.
  - SessionStore: persists walkthrough session state.
*/
package ports
