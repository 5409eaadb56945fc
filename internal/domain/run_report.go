package domain

import (
	"time"
)

// RunStatus represents the overall status of a sync run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// StepStatus represents the status of an individual git operation
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepType identifies the git operation performed by a step
type StepType string

const (
	StepTypeConfigureUser    StepType = "configure_user"
	StepTypeAddRemote        StepType = "add_remote"
	StepTypeFetchBranch      StepType = "fetch_branch"
	StepTypePull             StepType = "pull"
	StepTypeResetHard        StepType = "reset_hard"
	StepTypePushBranch       StepType = "push_branch"
	StepTypeDeleteLocalTags  StepType = "delete_local_tags"
	StepTypeDeleteRemoteTags StepType = "delete_remote_tags"
	StepTypeFetchTags        StepType = "fetch_tags"
	StepTypePushTags         StepType = "push_tags"
)

// RunReport records the git operations performed during a sync run
type RunReport struct {
	RunID     string
	StartedAt time.Time
	UpdatedAt time.Time
	Steps     []StepRecord
	Status    RunStatus
	Error     string
}

// StepRecord represents a single git operation of the run
type StepRecord struct {
	Name        string
	Type        StepType
	Status      StepStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// NewRunReport creates a new run report
func NewRunReport(runID string) *RunReport {
	now := time.Now()
	return &RunReport{
		RunID:     runID,
		StartedAt: now,
		UpdatedAt: now,
		Steps:     []StepRecord{},
		Status:    RunStatusPending,
	}
}

// AddStep adds a pending step record to the report
func (r *RunReport) AddStep(name string, stepType StepType) {
	r.Steps = append(r.Steps, StepRecord{
		Name:   name,
		Type:   stepType,
		Status: StepStatusPending,
	})
	r.UpdatedAt = time.Now()
}

// MarkStepStarted marks the first pending step of the given type as running
func (r *RunReport) MarkStepStarted(stepType StepType) {
	now := time.Now()
	for i := range r.Steps {
		if r.Steps[i].Type == stepType && r.Steps[i].Status == StepStatusPending {
			r.Steps[i].Status = StepStatusRunning
			r.Steps[i].StartedAt = now
			r.UpdatedAt = now
			break
		}
	}
}

// MarkStepCompleted marks the running step of the given type as completed
func (r *RunReport) MarkStepCompleted(stepType StepType) {
	now := time.Now()
	for i := range r.Steps {
		if r.Steps[i].Type == stepType && r.Steps[i].Status == StepStatusRunning {
			r.Steps[i].Status = StepStatusCompleted
			r.Steps[i].CompletedAt = &now
			r.UpdatedAt = now
			break
		}
	}
}

// MarkStepFailed marks the running step of the given type as failed and fails the run
func (r *RunReport) MarkStepFailed(stepType StepType, err error) {
	now := time.Now()
	for i := range r.Steps {
		if r.Steps[i].Type == stepType && r.Steps[i].Status == StepStatusRunning {
			r.Steps[i].Status = StepStatusFailed
			r.Steps[i].CompletedAt = &now
			r.Steps[i].Error = err.Error()
			r.UpdatedAt = now
			break
		}
	}
	r.Status = RunStatusFailed
	r.Error = err.Error()
}

// CompletedSteps returns the names of completed steps in execution order
func (r *RunReport) CompletedSteps() []string {
	var names []string
	for _, s := range r.Steps {
		if s.Status == StepStatusCompleted {
			names = append(names, s.Name)
		}
	}
	return names
}
