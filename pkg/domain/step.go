package domain

// StepKind discriminates the two step variants.
type StepKind string

const (
	// KindQuestion is a step that presents options and branches on the answer.
	KindQuestion StepKind = "question"
	// KindSolution is a leaf step carrying a proposed fix.
	KindSolution StepKind = "solution"
)

// EntryPointID is the conventional id of the step every walkthrough starts from.
const EntryPointID = "symptom-start"

// Step is the common surface of Question and Solution.
// The interface is sealed: only the two variants in this package implement it,
// so a type switch over Step is exhaustive.
type Step interface {
	StepID() string
	Kind() StepKind

	sealed()
}

// Option is one selectable answer on a Question.
// NextStepID may reference a step that does not (yet) exist; the graph is
// allowed to be transiently inconsistent while it is being edited, and the
// validator reports dangling targets.
type Option struct {
	Text       string `json:"text" yaml:"text"`
	NextStepID string `json:"next_step_id" yaml:"next"`
}

// Question is a branching step. Option order is display order.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Options []Option `json:"options" yaml:"options"`
}

// StepID returns the unique step id.
func (q Question) StepID() string { return q.ID }

// Kind returns KindQuestion.
func (q Question) Kind() StepKind { return KindQuestion }

func (Question) sealed() {}

// Solution is a leaf step. GuideID optionally links an instruction guide;
// the empty string means no linked guide.
type Solution struct {
	ID               string `json:"id" yaml:"id"`
	Title            string `json:"title" yaml:"title"`
	Description      string `json:"description" yaml:"description"`
	GuideID          string `json:"guide_id,omitempty" yaml:"guide,omitempty"`
	ProfessionalHelp bool   `json:"professional_help,omitempty" yaml:"professional_help,omitempty"`
}

// StepID returns the unique step id.
func (s Solution) StepID() string { return s.ID }

// Kind returns KindSolution.
func (s Solution) Kind() StepKind { return KindSolution }

func (Solution) sealed() {}
