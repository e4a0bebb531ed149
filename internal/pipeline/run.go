package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/cameronsjo/stevedore/internal/config"
)

// Stage identifies the pipeline state. The working stages double as the
// state machine's intermediate states; Succeeded and Failed are terminal.
type Stage string

const (
	StagePending   Stage = "Pending"
	StageCheckout  Stage = "Checkout"
	StageBuild     Stage = "Build"
	StageDeploy    Stage = "Deploy"
	StageSucceeded Stage = "Succeeded"
	StageFailed    Stage = "Failed"
)

// Run is the transient state for one pipeline invocation. It is created
// at run start, mutated only by the pipeline, and discarded after
// completion; nothing is persisted.
type Run struct {
	// ID uniquely identifies this run in logs and snapshots.
	ID string

	// Config is the immutable configuration driving the run.
	Config *config.RunConfig

	// Stage is the current state; terminal once Succeeded or Failed.
	Stage Stage

	// Err holds the terminal *StageError when Stage is Failed.
	Err error

	// Started and Finished bound the run for reporting.
	Started  time.Time
	Finished time.Time
}

func newRun(cfg *config.RunConfig) *Run {
	return &Run{
		ID:      uuid.New().String(),
		Config:  cfg,
		Stage:   StagePending,
		Started: time.Now(),
	}
}

// ShortID returns the first eight characters of the run ID.
func (r *Run) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

// Succeeded reports whether the run reached the Succeeded state.
func (r *Run) Succeeded() bool {
	return r.Stage == StageSucceeded
}

// Duration returns the wall time between start and finish.
func (r *Run) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
