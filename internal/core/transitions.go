package core

import (
	"time"
)

// TransitionGuard validates status changes against the task lifecycle.
//
// All five statuses are mutually reachable except that completed and failed
// are terminal: once a task is in a terminal status, the only accepted
// "transition" is a no-op to the same status. Setting AllowReopen relaxes
// the terminal rule and lets tasks move back into active statuses.
type TransitionGuard struct {
	AllowReopen bool
}

// Apply validates the change from the task's current status to next and
// mutates the task in place on success. Moving into completed or failed
// stamps the matching timestamp; reopening clears both stamps so analytics
// never counts a reopened task as closed.
//
// A transition to the task's current status is an idempotent no-op.
func (g TransitionGuard) Apply(task *Task, next string, now time.Time) error {
	if !ValidStatuses[next] {
		return &InvalidTransitionError{From: task.Status, To: next}
	}
	if task.Status == next {
		return nil
	}
	if IsTerminal(task.Status) && !g.AllowReopen {
		return &InvalidTransitionError{From: task.Status, To: next}
	}

	task.Status = next
	switch next {
	case StatusCompleted:
		ts := now
		task.CompletedAt = &ts
		task.FailedAt = nil
	case StatusFailed:
		ts := now
		task.FailedAt = &ts
		task.CompletedAt = nil
	default:
		task.CompletedAt = nil
		task.FailedAt = nil
	}
	return nil
}
