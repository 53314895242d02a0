package core

import (
	"context"
	"fmt"
	"time"

	"github.com/firefly-engine/firefly/logger"
	"github.com/firefly-engine/firefly/platform"
)

// PlanPublisher receives a fresh snapshot of the plan after every status
// change, and the failing step's error when the run halts.
type PlanPublisher interface {
	PublishPlan(plan Plan)
	Error(step StepName, err error)
}

type DefaultPlanPublisher struct{}

func (p *DefaultPlanPublisher) PublishPlan(plan Plan) {}

func (p *DefaultPlanPublisher) Error(step StepName, err error) {}

// Sequencer drives a plan through the gateway one step at a time, in plan
// order. The first failure halts the run; later steps stay Pending.
type Sequencer struct {
	plan     Plan
	actions  map[StepName]func(context.Context) error
	pub      PlanPublisher
	logger   logger.Logger
	platform platform.Platform
}

// NewSequencer plans the given choices and binds each step name to its
// gateway operation. The binding happens once, here, so executing the plan
// never dispatches on step names outside this table.
func NewSequencer(choices *WizardChoices, gw Gateway, pub PlanPublisher, log logger.Logger) *Sequencer {
	if pub == nil {
		pub = &DefaultPlanPublisher{}
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	s := &Sequencer{
		plan:   PlanSteps(choices),
		pub:    pub,
		logger: log,
	}
	s.actions = map[StepName]func(context.Context) error{
		UpdateManifest: func(ctx context.Context) error {
			return gw.UpdateManifest(ctx, choices.ProjectName, choices.IncludeUIOverlay)
		},
		InstallDevTooling: func(ctx context.Context) error {
			return gw.InstallDevTooling(ctx)
		},
		InstallRuntimePackages: func(ctx context.Context) error {
			return gw.InstallRuntimePackages(ctx)
		},
		WriteIgnoreFile: func(ctx context.Context) error {
			return gw.WriteIgnoreFile(ctx)
		},
		WriteMainSourceFile: func(ctx context.Context) error {
			return gw.WriteMainSourceFile(ctx, choices.ProjectName, choices.Template)
		},
		DetectPlatform: func(ctx context.Context) error {
			p, err := gw.DetectPlatform(ctx)
			if err != nil {
				return err
			}
			s.platform = p
			return nil
		},
		DownloadSDK: func(ctx context.Context) error {
			return gw.DownloadAndExtractSDK(ctx, s.platform)
		},
		SetupPlatformBundles: func(ctx context.Context) error {
			return gw.SetupPlatformBundles(ctx, choices.ProjectName)
		},
	}
	return s
}

// Plan returns a snapshot of the plan as last observed.
func (s *Sequencer) Plan() Plan {
	return s.plan.Snapshot()
}

// Execute runs the plan to completion or first failure. An empty plan
// completes immediately. The returned error is the failing step's reason,
// untouched; the sequencer never interprets it.
func (s *Sequencer) Execute(ctx context.Context) error {
	s.logger.Info("Starting generation")
	for i := range s.plan {
		select {
		case <-ctx.Done():
			s.logger.Info("Generation cancelled")
			return ctx.Err()
		default:
		}

		name := s.plan[i].Name
		s.logger.Info(fmt.Sprintf("Executing step %d: %s", i, name))
		s.plan = s.plan.Advance(name, StepInProgress, "")
		s.pub.PublishPlan(s.plan)

		action, ok := s.actions[name]
		var err error
		if !ok {
			err = fmt.Errorf("no handler for step %s", name)
		} else {
			startTime := time.Now()
			err = action(ctx)
			if err == nil {
				s.logger.Info(fmt.Sprintf("Step %s completed in %v", name, time.Since(startTime)))
			}
		}

		if err != nil {
			s.logger.Error(fmt.Sprintf("Step %s failed: %v", name, err))
			s.plan = s.plan.Advance(name, StepFailed, err.Error())
			s.pub.PublishPlan(s.plan)
			s.pub.Error(name, err)
			return err
		}
		s.plan = s.plan.Advance(name, StepComplete, "")
		s.pub.PublishPlan(s.plan)
	}
	s.logger.Info("Generation completed")
	return nil
}
