package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransitionGuardApply(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		from        string
		to          string
		allowReopen bool
		wantErr     bool
		wantStatus  string
	}{
		{
			name:       "planned to in_progress",
			from:       StatusPlanned,
			to:         StatusInProgress,
			wantStatus: StatusInProgress,
		},
		{
			name:       "in_progress to paused",
			from:       StatusInProgress,
			to:         StatusPaused,
			wantStatus: StatusPaused,
		},
		{
			name:       "paused to completed",
			from:       StatusPaused,
			to:         StatusCompleted,
			wantStatus: StatusCompleted,
		},
		{
			name:       "in_progress to failed",
			from:       StatusInProgress,
			to:         StatusFailed,
			wantStatus: StatusFailed,
		},
		{
			name:       "same status is a no-op",
			from:       StatusInProgress,
			to:         StatusInProgress,
			wantStatus: StatusInProgress,
		},
		{
			name:       "terminal to same terminal is a no-op",
			from:       StatusCompleted,
			to:         StatusCompleted,
			wantStatus: StatusCompleted,
		},
		{
			name:    "completed to planned rejected",
			from:    StatusCompleted,
			to:      StatusPlanned,
			wantErr: true,
		},
		{
			name:    "completed to in_progress rejected",
			from:    StatusCompleted,
			to:      StatusInProgress,
			wantErr: true,
		},
		{
			name:    "failed to paused rejected",
			from:    StatusFailed,
			to:      StatusPaused,
			wantErr: true,
		},
		{
			name:    "completed to failed rejected",
			from:    StatusCompleted,
			to:      StatusFailed,
			wantErr: true,
		},
		{
			name:    "unknown status rejected",
			from:    StatusPlanned,
			to:      "archived",
			wantErr: true,
		},
		{
			name:        "completed to in_progress allowed with reopen",
			from:        StatusCompleted,
			to:          StatusInProgress,
			allowReopen: true,
			wantStatus:  StatusInProgress,
		},
		{
			name:        "failed to planned allowed with reopen",
			from:        StatusFailed,
			to:          StatusPlanned,
			allowReopen: true,
			wantStatus:  StatusPlanned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{ID: "t1", Title: "Test", Type: TypeShortTask, Status: tt.from}
			guard := TransitionGuard{AllowReopen: tt.allowReopen}

			err := guard.Apply(task, tt.to, now)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s -> %s, got none", tt.from, tt.to)
				}
				var ite *InvalidTransitionError
				if !errors.As(err, &ite) {
					t.Errorf("expected InvalidTransitionError, got %T", err)
				}
				if task.Status != tt.from {
					t.Errorf("task status mutated on rejected transition: %s", task.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, task.Status)
			}
		})
	}
}

func TestTransitionGuardStampsTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	guard := TransitionGuard{}

	task := &Task{ID: "t1", Title: "Test", Type: TypeShortTask, Status: StatusInProgress}
	if err := guard.Apply(task, StatusCompleted, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("expected completed_at stamped at %v, got %v", now, task.CompletedAt)
	}
	if task.FailedAt != nil {
		t.Errorf("expected failed_at nil, got %v", task.FailedAt)
	}

	task = &Task{ID: "t2", Title: "Test", Type: TypeShortTask, Status: StatusPlanned}
	if err := guard.Apply(task, StatusFailed, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.FailedAt == nil || !task.FailedAt.Equal(now) {
		t.Errorf("expected failed_at stamped at %v, got %v", now, task.FailedAt)
	}
	if task.CompletedAt != nil {
		t.Errorf("expected completed_at nil, got %v", task.CompletedAt)
	}
}

func TestTransitionGuardReopenClearsStamps(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	guard := TransitionGuard{AllowReopen: true}

	task := &Task{ID: "t1", Title: "Test", Type: TypeShortTask, Status: StatusInProgress}
	if err := guard.Apply(task, StatusCompleted, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := guard.Apply(task, StatusInProgress, later); err != nil {
		t.Fatalf("unexpected error on reopen: %v", err)
	}

	if task.CompletedAt != nil {
		t.Errorf("expected completed_at cleared after reopen, got %v", task.CompletedAt)
	}
	if task.FailedAt != nil {
		t.Errorf("expected failed_at cleared after reopen, got %v", task.FailedAt)
	}
}
