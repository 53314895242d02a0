package core

// Template selects the starter source file written into the new project.
type Template int

const (
	TemplateNone Template = iota
	Template2D
	Template3D
	TemplatePhysics
)

func (t Template) String() string {
	switch t {
	case Template2D:
		return "2d"
	case Template3D:
		return "3d"
	case TemplatePhysics:
		return "physics"
	default:
		return "none"
	}
}

// WizardChoices accumulates the user's answers across the choice screens.
// The wizard freezes them when the last choice is confirmed; the planner
// builds the step list from the frozen value exactly once.
type WizardChoices struct {
	ProjectName      string
	IncludeUIOverlay bool
	Template         Template
	BundleDesktop    bool
}

// DefaultChoices returns the choices the wizard starts from.
func DefaultChoices() *WizardChoices {
	return &WizardChoices{
		ProjectName:      "my_firefly_game",
		IncludeUIOverlay: false,
		Template:         TemplateNone,
		BundleDesktop:    false,
	}
}
