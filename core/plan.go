package core

// StepName labels one unit of work in a plan. Names are unique within a plan.
type StepName string

const (
	UpdateManifest         StepName = "update_manifest"
	InstallDevTooling      StepName = "install_dev_tooling"
	InstallRuntimePackages StepName = "install_runtime_packages"
	WriteIgnoreFile        StepName = "write_ignore_file"
	WriteMainSourceFile    StepName = "write_main_source_file"
	DetectPlatform         StepName = "detect_platform"
	DownloadSDK            StepName = "download_sdk"
	SetupPlatformBundles   StepName = "setup_platform_bundles"
)

// StepState is the status of a single step. Complete and Failed are terminal:
// once a step reaches either, no call can move it out again.
type StepState int

const (
	StepPending StepState = iota
	StepInProgress
	StepComplete
	StepFailed
)

func (s StepState) String() string {
	switch s {
	case StepInProgress:
		return "in-progress"
	case StepComplete:
		return "complete"
	case StepFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Terminal reports whether the state admits no further transitions.
func (s StepState) Terminal() bool {
	return s == StepComplete || s == StepFailed
}

// PlanStep is one named step with its current status. Reason is set only when
// the step failed, and holds the human-readable diagnosis verbatim.
type PlanStep struct {
	Name   StepName
	State  StepState
	Reason string
}

// Plan is the ordered list of steps for one generation run. It is built once
// from the frozen choices and never reordered or resized; only step statuses
// change, and always through Advance.
type Plan []PlanStep

// PlanSteps builds the plan for the given choices. Deterministic and free of
// side effects: the four base steps always lead, the template step is
// appended when a template was selected, and the three desktop-bundling
// steps are appended when bundling was requested.
func PlanSteps(choices *WizardChoices) Plan {
	names := []StepName{
		UpdateManifest,
		InstallDevTooling,
		InstallRuntimePackages,
		WriteIgnoreFile,
	}
	if choices.Template != TemplateNone {
		names = append(names, WriteMainSourceFile)
	}
	if choices.BundleDesktop {
		names = append(names, DetectPlatform, DownloadSDK, SetupPlatformBundles)
	}

	plan := make(Plan, len(names))
	for i, name := range names {
		plan[i] = PlanStep{Name: name, State: StepPending}
	}
	return plan
}

// Advance returns a copy of the plan in which the first step named name has
// been moved to next, provided its current state is Pending or InProgress.
// Steps already in a terminal state are left alone, and a name not present in
// the plan is a no-op rather than an error. The receiver is never mutated.
func (p Plan) Advance(name StepName, next StepState, reason string) Plan {
	out := make(Plan, len(p))
	copy(out, p)
	for i := range out {
		if out[i].Name != name {
			continue
		}
		if !out[i].State.Terminal() {
			out[i].State = next
			if next == StepFailed {
				out[i].Reason = reason
			} else {
				out[i].Reason = ""
			}
		}
		break
	}
	return out
}

// Snapshot returns an independent copy safe to hand to an observer.
func (p Plan) Snapshot() Plan {
	out := make(Plan, len(p))
	copy(out, p)
	return out
}
