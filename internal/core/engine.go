package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/virhant/planner/internal/storage"
)

// Config holds configuration for the planner engine
type Config struct {
	DBPath string

	// AllowReopen relaxes the terminal-state rule so completed and failed
	// tasks can move back into active statuses.
	AllowReopen bool
}

// Engine orchestrates the task store, progress log, transition guard and
// derived analytics
type Engine struct {
	tasks      TaskStorage
	progress   ProgressStorage
	workStates WorkStateStorage
	guard      TransitionGuard
	ids        IDGenerator
	clock      func() time.Time
	store      *storage.Store
}

// EngineDeps holds dependencies for constructing an Engine.
type EngineDeps struct {
	Tasks      TaskStorage
	Progress   ProgressStorage
	WorkStates WorkStateStorage
	Guard      TransitionGuard
	IDs        IDGenerator
	Clock      func() time.Time
}

// NewEngine creates an engine backed by a SQLite store at cfg.DBPath.
func NewEngine(cfg Config) (*Engine, error) {
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open planner store: %w", err)
	}

	return &Engine{
		tasks:      store,
		progress:   store,
		workStates: store,
		guard:      TransitionGuard{AllowReopen: cfg.AllowReopen},
		ids:        NewIDGenerator(),
		clock:      time.Now,
		store:      store,
	}, nil
}

// NewEngineWithDeps creates an engine with explicit dependencies (for testing).
func NewEngineWithDeps(deps EngineDeps) *Engine {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	ids := deps.IDs
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &Engine{
		tasks:      deps.Tasks,
		progress:   deps.Progress,
		workStates: deps.WorkStates,
		guard:      deps.Guard,
		ids:        ids,
		clock:      clock,
	}
}

// Close releases the underlying store
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// CreateTask validates the request and stores a new task.
// The initial status may be any valid status; the transition guard only
// applies to later changes.
func (e *Engine) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	if req.Status == "" {
		req.Status = StatusPlanned
	}
	if req.PriorityMode == "" {
		req.PriorityMode = PriorityNone
	}

	now := e.clock()
	task := &Task{
		ID:                  e.ids.GenerateID(),
		Title:               req.Title,
		Description:         req.Description,
		Type:                req.Type,
		ProjectID:           req.ProjectID,
		Status:              req.Status,
		SoftDeadline:        req.SoftDeadline,
		HardDeadline:        req.HardDeadline,
		PriorityMode:        req.PriorityMode,
		PriorityLevel:       req.PriorityLevel,
		PriorityPeriodStart: req.PriorityPeriodStart,
		PriorityPeriodEnd:   req.PriorityPeriodEnd,
		Tags:                req.Tags,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// A task created directly in a terminal state gets its transition
	// timestamp stamped so analytics can bucket it.
	switch task.Status {
	case StatusCompleted:
		ts := now
		task.CompletedAt = &ts
	case StatusFailed:
		ts := now
		task.FailedAt = &ts
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := e.tasks.SaveTask(taskToRecord(task)); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by ID
func (e *Engine) GetTask(ctx context.Context, id string) (*Task, error) {
	record, err := e.tasks.GetTask(id)
	if err != nil {
		return nil, mapTaskStorageErr(id, err)
	}
	return taskFromRecord(record), nil
}

// ListTasks retrieves tasks matching the filter, in insertion order
func (e *Engine) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	if filter.Status != "" && !ValidStatuses[filter.Status] {
		return nil, &ValidationError{Field: "status", Reason: "unknown status " + filter.Status}
	}
	if filter.Type != "" && !ValidTypes[filter.Type] {
		return nil, &ValidationError{Field: "type", Reason: "unknown type " + filter.Type}
	}

	records, err := e.tasks.ListTasks(storage.TaskFilter{
		Status:        filter.Status,
		Type:          filter.Type,
		PriorityLevel: filter.PriorityLevel,
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, len(records))
	for i, r := range records {
		tasks[i] = *taskFromRecord(r)
	}
	return tasks, nil
}

// UpdateTask merges the provided fields into the task. A status change is
// routed through the transition guard, and the write is guarded against the
// status having changed since the read.
func (e *Engine) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	record, err := e.tasks.GetTask(id)
	if err != nil {
		return nil, mapTaskStorageErr(id, err)
	}
	task := taskFromRecord(record)
	observedStatus := task.Status

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Type != nil {
		task.Type = *req.Type
	}
	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.SoftDeadline != nil {
		task.SoftDeadline = req.SoftDeadline
	}
	if req.HardDeadline != nil {
		task.HardDeadline = req.HardDeadline
	}
	if req.PriorityMode != nil {
		task.PriorityMode = *req.PriorityMode
	}
	if req.PriorityLevel != nil {
		task.PriorityLevel = *req.PriorityLevel
	}
	if req.PriorityPeriodStart != nil {
		task.PriorityPeriodStart = req.PriorityPeriodStart
	}
	if req.PriorityPeriodEnd != nil {
		task.PriorityPeriodEnd = req.PriorityPeriodEnd
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}

	now := e.clock()
	if req.Status != nil {
		if err := e.guard.Apply(task, *req.Status, now); err != nil {
			return nil, err
		}
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	task.UpdatedAt = now
	if err := e.tasks.UpdateTaskGuarded(taskToRecord(task), observedStatus); err != nil {
		return nil, mapTaskStorageErr(id, err)
	}
	return task, nil
}

// DeleteTask removes a task and its progress entries
func (e *Engine) DeleteTask(ctx context.Context, id string) error {
	if err := e.tasks.DeleteTask(id); err != nil {
		return mapTaskStorageErr(id, err)
	}
	return nil
}

// AddProgress appends a progress entry to a task's log. The timestamp comes
// from the server clock, never the caller, so the log stays chronological.
func (e *Engine) AddProgress(ctx context.Context, taskID string, req AddProgressRequest) (*ProgressEntry, error) {
	if req.ProgressValue < 0 || req.ProgressValue > 100 {
		return nil, &ValidationError{Field: "progress_value", Reason: "must be between 0 and 100"}
	}
	if req.EffortScore < 1 || req.EffortScore > 5 {
		return nil, &ValidationError{Field: "effort_score", Reason: "must be between 1 and 5"}
	}

	if _, err := e.tasks.GetTask(taskID); err != nil {
		return nil, mapTaskStorageErr(taskID, err)
	}

	entry := &ProgressEntry{
		ID:            e.ids.GenerateID(),
		TaskID:        taskID,
		Timestamp:     e.clock(),
		ProgressValue: req.ProgressValue,
		EffortScore:   req.EffortScore,
		Comment:       req.Comment,
	}

	if err := e.progress.SaveProgress(progressToRecord(entry)); err != nil {
		return nil, fmt.Errorf("failed to save progress entry: %w", err)
	}
	return entry, nil
}

// ListProgress retrieves a task's progress entries, oldest first
func (e *Engine) ListProgress(ctx context.Context, taskID string) ([]ProgressEntry, error) {
	if _, err := e.tasks.GetTask(taskID); err != nil {
		return nil, mapTaskStorageErr(taskID, err)
	}

	records, err := e.progress.ListProgress(taskID)
	if err != nil {
		return nil, err
	}

	entries := make([]ProgressEntry, len(records))
	for i, r := range records {
		entries[i] = *progressFromRecord(r)
	}
	return entries, nil
}

// Summary computes the analytics summary over [from, to]. Both scans run
// against the live store; a summary computed from a slightly stale snapshot
// is acceptable.
func (e *Engine) Summary(ctx context.Context, from, to time.Time) (*AnalyticsSummary, error) {
	taskRecords, err := e.tasks.ListTasks(storage.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tasks: %w", err)
	}
	progressRecords, err := e.progress.ListProgressAll()
	if err != nil {
		return nil, fmt.Errorf("failed to scan progress entries: %w", err)
	}

	tasks := make([]Task, len(taskRecords))
	for i, r := range taskRecords {
		tasks[i] = *taskFromRecord(r)
	}
	entries := make([]ProgressEntry, len(progressRecords))
	for i, r := range progressRecords {
		entries[i] = *progressFromRecord(r)
	}

	return Summarize(tasks, entries, from, to)
}

// TaskAnalytics retrieves the chronological progress history of one task
func (e *Engine) TaskAnalytics(ctx context.Context, taskID string) (*TaskAnalytics, error) {
	entries, err := e.ListProgress(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskAnalytics{TaskID: taskID, Progress: entries}, nil
}

// Deadlines classifies all tasks against now's calendar day
func (e *Engine) Deadlines(ctx context.Context, now time.Time) (*DeadlineReport, error) {
	tasks, err := e.ListTasks(ctx, TaskFilter{})
	if err != nil {
		return nil, err
	}
	return ClassifyDeadlines(tasks, now), nil
}

// PutWorkState upserts the self assessment for a calendar day
func (e *Engine) PutWorkState(ctx context.Context, req WorkStateRequest) (*WorkState, error) {
	if _, err := time.Parse(dayFormat, req.Date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if req.SelfRating < 1 || req.SelfRating > 5 {
		return nil, &ValidationError{Field: "self_rating", Reason: "must be between 1 and 5"}
	}

	// The store keeps the existing row's id when the date already has one
	// and writes the persisted id back into the record.
	record := &storage.WorkStateRecord{
		ID:         e.ids.GenerateID(),
		Date:       req.Date,
		SelfRating: req.SelfRating,
		Notes:      req.Notes,
	}
	if err := e.workStates.UpsertWorkState(record); err != nil {
		return nil, fmt.Errorf("failed to save work state: %w", err)
	}
	return &WorkState{
		ID:         record.ID,
		Date:       record.Date,
		SelfRating: record.SelfRating,
		Notes:      record.Notes,
	}, nil
}

// ListWorkStates retrieves daily self assessments in [from, to], oldest
// first. Empty bounds impose no constraint.
func (e *Engine) ListWorkStates(ctx context.Context, from, to string) ([]WorkState, error) {
	records, err := e.workStates.ListWorkStates(from, to)
	if err != nil {
		return nil, err
	}
	states := make([]WorkState, len(records))
	for i, r := range records {
		states[i] = WorkState{ID: r.ID, Date: r.Date, SelfRating: r.SelfRating, Notes: r.Notes}
	}
	return states, nil
}

// Type conversion helpers

func taskFromRecord(r *storage.TaskRecord) *Task {
	return &Task{
		ID:                  r.ID,
		Title:               r.Title,
		Description:         r.Description,
		Type:                r.Type,
		ProjectID:           r.ProjectID,
		Status:              r.Status,
		SoftDeadline:        r.SoftDeadline,
		HardDeadline:        r.HardDeadline,
		PriorityMode:        r.PriorityMode,
		PriorityLevel:       r.PriorityLevel,
		PriorityPeriodStart: r.PriorityPeriodStart,
		PriorityPeriodEnd:   r.PriorityPeriodEnd,
		Tags:                r.Tags,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
		CompletedAt:         r.CompletedAt,
		FailedAt:            r.FailedAt,
	}
}

func taskToRecord(t *Task) *storage.TaskRecord {
	return &storage.TaskRecord{
		ID:                  t.ID,
		Title:               t.Title,
		Description:         t.Description,
		Type:                t.Type,
		ProjectID:           t.ProjectID,
		Status:              t.Status,
		SoftDeadline:        t.SoftDeadline,
		HardDeadline:        t.HardDeadline,
		PriorityMode:        t.PriorityMode,
		PriorityLevel:       t.PriorityLevel,
		PriorityPeriodStart: t.PriorityPeriodStart,
		PriorityPeriodEnd:   t.PriorityPeriodEnd,
		Tags:                t.Tags,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
		CompletedAt:         t.CompletedAt,
		FailedAt:            t.FailedAt,
	}
}

func progressFromRecord(r *storage.ProgressRecord) *ProgressEntry {
	return &ProgressEntry{
		ID:            r.ID,
		TaskID:        r.TaskID,
		Timestamp:     r.Timestamp,
		ProgressValue: r.ProgressValue,
		EffortScore:   r.EffortScore,
		Comment:       r.Comment,
	}
}

func progressToRecord(p *ProgressEntry) *storage.ProgressRecord {
	return &storage.ProgressRecord{
		ID:            p.ID,
		TaskID:        p.TaskID,
		Timestamp:     p.Timestamp,
		ProgressValue: p.ProgressValue,
		EffortScore:   p.EffortScore,
		Comment:       p.Comment,
	}
}

// mapTaskStorageErr converts store sentinels into the engine error taxonomy
func mapTaskStorageErr(id string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &NotFoundError{Kind: "task", ID: id}
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s", ErrStaleStatus, id)
	default:
		return err
	}
}
