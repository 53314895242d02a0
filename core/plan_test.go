package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(p Plan) []StepName {
	out := make([]StepName, len(p))
	for i, step := range p {
		out[i] = step.Name
	}
	return out
}

func TestPlanSteps_Combinations(t *testing.T) {
	base := []StepName{UpdateManifest, InstallDevTooling, InstallRuntimePackages, WriteIgnoreFile}
	bundle := []StepName{DetectPlatform, DownloadSDK, SetupPlatformBundles}

	tests := []struct {
		name     string
		template Template
		bundles  bool
		expected []StepName
	}{
		{"no template, no bundle", TemplateNone, false, base},
		{"template, no bundle", Template2D, false, append(append([]StepName{}, base...), WriteMainSourceFile)},
		{"no template, bundle", TemplateNone, true, append(append([]StepName{}, base...), bundle...)},
		{"template and bundle", TemplatePhysics, true, append(append(append([]StepName{}, base...), WriteMainSourceFile), bundle...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanSteps(&WizardChoices{
				ProjectName:   "game",
				Template:      tt.template,
				BundleDesktop: tt.bundles,
			})
			assert.Equal(t, tt.expected, names(plan))
			for _, step := range plan {
				assert.Equal(t, StepPending, step.State)
				assert.Empty(t, step.Reason)
			}
		})
	}
}

func TestPlanSteps_Counts(t *testing.T) {
	assert.Len(t, PlanSteps(&WizardChoices{}), 4)
	assert.Len(t, PlanSteps(&WizardChoices{Template: Template3D}), 5)
	assert.Len(t, PlanSteps(&WizardChoices{BundleDesktop: true}), 7)
	assert.Len(t, PlanSteps(&WizardChoices{Template: Template3D, BundleDesktop: true}), 8)
}

func TestAdvance_UnknownNameIsNoOp(t *testing.T) {
	plan := PlanSteps(&WizardChoices{})
	out := plan.Advance("no_such_step", StepComplete, "")
	assert.Equal(t, plan, out)
}

func TestAdvance_MovesPendingStep(t *testing.T) {
	plan := PlanSteps(&WizardChoices{})
	out := plan.Advance(InstallDevTooling, StepInProgress, "")

	assert.Equal(t, StepInProgress, out[1].State)
	assert.Equal(t, StepPending, out[0].State)
	assert.Equal(t, StepPending, out[2].State)
	// the receiver is untouched
	assert.Equal(t, StepPending, plan[1].State)
}

func TestAdvance_FailedCarriesReason(t *testing.T) {
	plan := PlanSteps(&WizardChoices{})
	out := plan.Advance(UpdateManifest, StepInProgress, "")
	out = out.Advance(UpdateManifest, StepFailed, "disk full")

	assert.Equal(t, StepFailed, out[0].State)
	assert.Equal(t, "disk full", out[0].Reason)
}

func TestAdvance_TerminalStatesAreSticky(t *testing.T) {
	plan := PlanSteps(&WizardChoices{})

	terminal := plan.Advance(UpdateManifest, StepInProgress, "").
		Advance(UpdateManifest, StepComplete, "")
	for _, next := range []StepState{StepPending, StepInProgress, StepComplete, StepFailed} {
		assert.Equal(t, terminal, terminal.Advance(UpdateManifest, next, "later"))
	}

	failed := plan.Advance(UpdateManifest, StepInProgress, "").
		Advance(UpdateManifest, StepFailed, "boom")
	for _, next := range []StepState{StepPending, StepInProgress, StepComplete, StepFailed} {
		assert.Equal(t, failed, failed.Advance(UpdateManifest, next, "other"))
	}
}

func TestStepState_Terminal(t *testing.T) {
	assert.False(t, StepPending.Terminal())
	assert.False(t, StepInProgress.Terminal())
	assert.True(t, StepComplete.Terminal())
	assert.True(t, StepFailed.Terminal())
}
