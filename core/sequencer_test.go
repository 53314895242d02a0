package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/firefly-engine/firefly/logger"
	"github.com/firefly-engine/firefly/platform"
)

// MockGateway is a mock implementation of the Gateway boundary
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) UpdateManifest(ctx context.Context, projectName string, includeUIOverlay bool) error {
	args := m.Called(ctx, projectName, includeUIOverlay)
	return args.Error(0)
}

func (m *MockGateway) InstallDevTooling(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) InstallRuntimePackages(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) WriteIgnoreFile(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) WriteMainSourceFile(ctx context.Context, projectName string, template Template) error {
	args := m.Called(ctx, projectName, template)
	return args.Error(0)
}

func (m *MockGateway) DetectPlatform(ctx context.Context) (platform.Platform, error) {
	args := m.Called(ctx)
	return args.Get(0).(platform.Platform), args.Error(1)
}

func (m *MockGateway) DownloadAndExtractSDK(ctx context.Context, p platform.Platform) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockGateway) SetupPlatformBundles(ctx context.Context, projectName string) error {
	args := m.Called(ctx, projectName)
	return args.Error(0)
}

// recordingPublisher keeps every snapshot the sequencer publishes.
type recordingPublisher struct {
	snapshots []Plan
	errs      []error
}

func (p *recordingPublisher) PublishPlan(plan Plan) {
	p.snapshots = append(p.snapshots, plan)
}

func (p *recordingPublisher) Error(step StepName, err error) {
	p.errs = append(p.errs, err)
}

func (p *recordingPublisher) latest() Plan {
	if len(p.snapshots) == 0 {
		return nil
	}
	return p.snapshots[len(p.snapshots)-1]
}

func TestSequencer_AllStepsComplete(t *testing.T) {
	gw := new(MockGateway)
	gw.On("UpdateManifest", mock.Anything, "asteroids", true).Return(nil).Once()
	gw.On("InstallDevTooling", mock.Anything).Return(nil).Once()
	gw.On("InstallRuntimePackages", mock.Anything).Return(nil).Once()
	gw.On("WriteIgnoreFile", mock.Anything).Return(nil).Once()
	gw.On("WriteMainSourceFile", mock.Anything, "asteroids", Template3D).Return(nil).Once()

	choices := &WizardChoices{
		ProjectName:      "asteroids",
		IncludeUIOverlay: true,
		Template:         Template3D,
		BundleDesktop:    false,
	}
	pub := &recordingPublisher{}
	seq := NewSequencer(choices, gw, pub, logger.NewNullLogger())

	err := seq.Execute(context.Background())
	assert.NoError(t, err)

	final := pub.latest()
	assert.Equal(t, []StepName{
		UpdateManifest,
		InstallDevTooling,
		InstallRuntimePackages,
		WriteIgnoreFile,
		WriteMainSourceFile,
	}, names(final))
	for _, step := range final {
		assert.Equal(t, StepComplete, step.State)
	}
	assert.Empty(t, pub.errs)
	gw.AssertExpectations(t)
}

func TestSequencer_HaltsOnFirstFailure(t *testing.T) {
	gw := new(MockGateway)
	gw.On("UpdateManifest", mock.Anything, "game", false).Return(nil).Once()
	gw.On("InstallDevTooling", mock.Anything).Return(nil).Once()
	gw.On("InstallRuntimePackages", mock.Anything).Return(nil).Once()
	gw.On("WriteIgnoreFile", mock.Anything).Return(nil).Once()
	gw.On("DetectPlatform", mock.Anything).Return(platform.Linux, nil).Once()
	gw.On("DownloadAndExtractSDK", mock.Anything, platform.Linux).Return(errors.New("network unreachable")).Once()

	choices := &WizardChoices{
		ProjectName:   "game",
		Template:      TemplateNone,
		BundleDesktop: true,
	}
	pub := &recordingPublisher{}
	seq := NewSequencer(choices, gw, pub, logger.NewNullLogger())

	err := seq.Execute(context.Background())
	assert.EqualError(t, err, "network unreachable")

	final := pub.latest()
	assert.Len(t, final, 7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, StepComplete, final[i].State, "step %s", final[i].Name)
	}
	assert.Equal(t, DownloadSDK, final[5].Name)
	assert.Equal(t, StepFailed, final[5].State)
	assert.Equal(t, "network unreachable", final[5].Reason)
	assert.Equal(t, SetupPlatformBundles, final[6].Name)
	assert.Equal(t, StepPending, final[6].State)

	assert.Len(t, pub.errs, 1)
	gw.AssertNotCalled(t, "SetupPlatformBundles", mock.Anything, mock.Anything)
}

func TestSequencer_DetectedPlatformFlowsToDownload(t *testing.T) {
	gw := new(MockGateway)
	gw.On("UpdateManifest", mock.Anything, "game", false).Return(nil).Once()
	gw.On("InstallDevTooling", mock.Anything).Return(nil).Once()
	gw.On("InstallRuntimePackages", mock.Anything).Return(nil).Once()
	gw.On("WriteIgnoreFile", mock.Anything).Return(nil).Once()
	gw.On("DetectPlatform", mock.Anything).Return(platform.MacOS, nil).Once()
	gw.On("DownloadAndExtractSDK", mock.Anything, platform.MacOS).Return(nil).Once()
	gw.On("SetupPlatformBundles", mock.Anything, "game").Return(nil).Once()

	choices := &WizardChoices{ProjectName: "game", BundleDesktop: true}
	seq := NewSequencer(choices, gw, &recordingPublisher{}, logger.NewNullLogger())

	err := seq.Execute(context.Background())
	assert.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestSequencer_EmptyPlanCompletesImmediately(t *testing.T) {
	seq := &Sequencer{
		plan:   Plan{},
		pub:    &DefaultPlanPublisher{},
		logger: logger.NewNullLogger(),
	}
	assert.NoError(t, seq.Execute(context.Background()))
}

func TestSequencer_UnknownStepNameFails(t *testing.T) {
	pub := &recordingPublisher{}
	seq := &Sequencer{
		plan:    Plan{{Name: "mystery_step", State: StepPending}},
		actions: map[StepName]func(context.Context) error{},
		pub:     pub,
		logger:  logger.NewNullLogger(),
	}

	err := seq.Execute(context.Background())
	assert.EqualError(t, err, "no handler for step mystery_step")

	final := pub.latest()
	assert.Equal(t, StepFailed, final[0].State)
	assert.Equal(t, "no handler for step mystery_step", final[0].Reason)
}

func TestSequencer_Cancelled(t *testing.T) {
	gw := new(MockGateway)
	choices := &WizardChoices{ProjectName: "game"}
	pub := &recordingPublisher{}
	seq := NewSequencer(choices, gw, pub, logger.NewNullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := seq.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.snapshots)
	gw.AssertNotCalled(t, "UpdateManifest", mock.Anything, mock.Anything, mock.Anything)
}

func TestSequencer_PlanReturnsSnapshot(t *testing.T) {
	seq := NewSequencer(&WizardChoices{}, new(MockGateway), nil, nil)
	snapshot := seq.Plan()
	snapshot[0].State = StepComplete
	assert.Equal(t, StepPending, seq.Plan()[0].State)
}
