package cli

import (
	"fmt"

	"github.com/firefly-engine/firefly/core"
	"github.com/firefly-engine/firefly/logger"
)

// CliPlanPublisher forwards plan snapshots from the sequencer to the wizard
// over buffered channels, so the sequencer never blocks on rendering.
type CliPlanPublisher struct {
	planChan  chan core.Plan
	errorChan chan error
	logger    logger.Logger
}

func NewCliPlanPublisher(logger logger.Logger) *CliPlanPublisher {
	return &CliPlanPublisher{
		planChan:  make(chan core.Plan, 100), // Buffer size of 100
		errorChan: make(chan error, 10),      // Buffer size of 10
		logger:    logger,
	}
}

func (p *CliPlanPublisher) PublishPlan(plan core.Plan) {
	select {
	case p.planChan <- plan:
	default:
		p.logger.Warn("Failed to publish plan snapshot. Channel full.")
	}
}

func (p *CliPlanPublisher) Error(step core.StepName, err error) {
	select {
	case p.errorChan <- err:
		p.logger.Debug(fmt.Sprintf("Published error for step %s", step))
	default:
		p.logger.Warn(fmt.Sprintf("Failed to publish error for step %s. Channel full.", step))
	}
}
