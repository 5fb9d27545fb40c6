package domain

// GuideCategory classifies an instruction guide.
type GuideCategory string

const (
	CategoryMaintenance GuideCategory = "Maintenance"
	CategoryRepair      GuideCategory = "Repair"
	CategoryCleaning    GuideCategory = "Cleaning"
)

// GenericMachine is the sentinel brand/model meaning "applies to any machine".
// It is not a real machine.
const GenericMachine = "Generic"

// GuideStep is one instruction inside a guide.
type GuideStep struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	VideoURL    string `json:"video_url,omitempty" yaml:"video_url,omitempty"`
}

// Guide is a maintenance/repair/cleaning instruction guide.
// Guides are owned by the catalog and read-only for this library.
type Guide struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Category     GuideCategory `json:"category" yaml:"category"`
	MachineBrand string        `json:"machine_brand" yaml:"machine_brand"`
	MachineModel string        `json:"machine_model" yaml:"machine_model"`
	Summary      string        `json:"summary" yaml:"summary"`
	ImageURL     string        `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Steps        []GuideStep   `json:"steps" yaml:"steps"`
	Tools        []string      `json:"tools,omitempty" yaml:"tools,omitempty"`
	SafetyAlerts []string      `json:"safety_alerts,omitempty" yaml:"safety_alerts,omitempty"`
}

// AppliesTo reports whether the guide targets the given brand and model exactly.
func (g Guide) AppliesTo(brand, model string) bool {
	return g.MachineBrand == brand && g.MachineModel == model
}

// Machine is a user's coffee machine, selected per troubleshooting session.
// A nil *Machine means "no selection".
type Machine struct {
	ID       string `json:"id" yaml:"id"`
	Brand    string `json:"brand" yaml:"brand"`
	Model    string `json:"model" yaml:"model"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// GuideFilter narrows a catalog listing. Zero-valued fields match everything.
type GuideFilter struct {
	Category GuideCategory
	Brand    string
	Model    string
}

// Matches reports whether the guide satisfies every set filter field.
func (f GuideFilter) Matches(g Guide) bool {
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	if f.Brand != "" && g.MachineBrand != f.Brand {
		return false
	}
	if f.Model != "" && g.MachineModel != f.Model {
		return false
	}
	return true
}
