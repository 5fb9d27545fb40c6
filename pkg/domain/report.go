package domain

import "fmt"

// Severity grades a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// FindingCode identifies the check a finding came from.
type FindingCode string

const (
	// FindingMissingEntryPoint: no step carries the entry-point id.
	FindingMissingEntryPoint FindingCode = "missing_entry_point"
	// FindingDanglingOption: a question option targets a step id that does not exist.
	FindingDanglingOption FindingCode = "dangling_option"
	// FindingDanglingGuide: a solution references a guide id absent from the catalog.
	FindingDanglingGuide FindingCode = "dangling_guide"
	// FindingOrphanStep: a step is not reachable from the entry point.
	FindingOrphanStep FindingCode = "orphan_step"
	// FindingEmptyStore: the store holds no steps at all.
	FindingEmptyStore FindingCode = "empty_store"
)

// Finding is one validation result. StepID and TargetID are set where they
// apply (e.g. a dangling option names both the question and the missing target).
type Finding struct {
	Severity Severity    `json:"severity"`
	Code     FindingCode `json:"code"`
	StepID   string      `json:"step_id,omitempty"`
	TargetID string      `json:"target_id,omitempty"`
	Message  string      `json:"message"`
}

func (f Finding) String() string {
	if f.StepID != "" {
		return fmt.Sprintf("[%s] %s: %s", f.Severity, f.StepID, f.Message)
	}
	return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
}

// Report is the full outcome of a validation pass. Validation always completes;
// structural problems are data here, never error returns.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Errors returns the findings with error severity.
func (r Report) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns the findings with warning severity.
func (r Report) Warnings() []Finding { return r.filter(SeverityWarning) }

// Infos returns the informational findings.
func (r Report) Infos() []Finding { return r.filter(SeverityInfo) }

// OK reports whether the graph has no error-level findings.
func (r Report) OK() bool { return len(r.Errors()) == 0 }

func (r Report) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
