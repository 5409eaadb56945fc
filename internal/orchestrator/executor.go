package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/upstream-sync/internal/domain"
	"go.uber.org/zap"
)

// Step represents a single git operation of the sync
type Step struct {
	Name    string
	Type    domain.StepType
	Execute func(ctx context.Context) error
}

// StepExecutor runs git operations strictly in order. Every step runs at most
// once and the first failure stops the run.
type StepExecutor struct {
	report *domain.RunReport
	steps  []Step
	logger *zap.Logger
}

// NewStepExecutor creates a new step executor
func NewStepExecutor(runID string, logger *zap.Logger) *StepExecutor {
	return &StepExecutor{
		report: domain.NewRunReport(runID),
		steps:  []Step{},
		logger: logger,
	}
}

// AddStep adds a step to the run
func (e *StepExecutor) AddStep(step Step) {
	e.steps = append(e.steps, step)
	e.report.AddStep(step.Name, step.Type)
}

// Report returns the run report
func (e *StepExecutor) Report() *domain.RunReport {
	return e.report
}

// Execute runs the steps in insertion order
func (e *StepExecutor) Execute(ctx context.Context) error {
	e.report.Status = domain.RunStatusRunning
	for _, step := range e.steps {
		if err := ctx.Err(); err != nil {
			e.report.Status = domain.RunStatusFailed
			e.report.Error = err.Error()
			return fmt.Errorf("step '%s' not started: %w", step.Name, err)
		}
		e.logger.Info("running step", zap.String("step", step.Name))
		e.report.MarkStepStarted(step.Type)
		if err := step.Execute(ctx); err != nil {
			e.report.MarkStepFailed(step.Type, err)
			e.logger.Error("step failed", zap.String("step", step.Name), zap.Error(err))
			return fmt.Errorf("step '%s' failed: %w", step.Name, err)
		}
		e.report.MarkStepCompleted(step.Type)
	}
	e.report.Status = domain.RunStatusCompleted
	return nil
}
