package core

import (
	"time"
)

// Task status constants
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusPaused     = "paused"
)

// Task type constants
const (
	TypeShortTask = "task_short"
	TypeLongTask  = "task_long"
	TypeProject   = "project"
)

// Priority mode constants
const (
	PriorityNone    = "none"
	PriorityDaily   = "daily"
	PriorityWeekly  = "weekly"
	PriorityMonthly = "monthly"
)

// ValidStatuses is the canonical set of accepted task statuses.
var ValidStatuses = map[string]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusFailed:     true,
	StatusPaused:     true,
}

// ValidTypes is the canonical set of accepted task types.
var ValidTypes = map[string]bool{
	TypeShortTask: true,
	TypeLongTask:  true,
	TypeProject:   true,
}

// ValidPriorityModes is the canonical set of accepted priority modes.
var ValidPriorityModes = map[string]bool{
	PriorityNone:    true,
	PriorityDaily:   true,
	PriorityWeekly:  true,
	PriorityMonthly: true,
}

// IsTerminal reports whether a status permits no further transitions
// (absent an explicit reopen).
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// Task represents a planned unit of work
type Task struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Type                string     `json:"type"` // task_short, task_long, project
	ProjectID           string     `json:"project_id,omitempty"`
	Status              string     `json:"status"` // planned, in_progress, completed, failed, paused
	SoftDeadline        *time.Time `json:"soft_deadline,omitempty"`
	HardDeadline        *time.Time `json:"hard_deadline,omitempty"`
	PriorityMode        string     `json:"priority_mode"` // none, daily, weekly, monthly
	PriorityLevel       int        `json:"priority_level"`
	PriorityPeriodStart *time.Time `json:"priority_period_start,omitempty"`
	PriorityPeriodEnd   *time.Time `json:"priority_period_end,omitempty"`
	Tags                string     `json:"tags,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	FailedAt            *time.Time `json:"failed_at,omitempty"`
}

// ProgressEntry is an immutable snapshot of completion and effort for a task
type ProgressEntry struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"task_id"`
	Timestamp     time.Time `json:"timestamp"`
	ProgressValue int       `json:"progress_value"` // 0..100
	EffortScore   int       `json:"effort_score"`   // 1..5
	Comment       string    `json:"comment,omitempty"`
}

// WorkState is a per-day self assessment. Date is a calendar day (YYYY-MM-DD).
type WorkState struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	SelfRating int    `json:"self_rating"` // 1..5
	Notes      string `json:"notes,omitempty"`
}

// CreateTaskRequest holds the fields accepted when creating a task
type CreateTaskRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Type                string     `json:"type"`
	ProjectID           string     `json:"project_id"`
	Status              string     `json:"status"` // defaults to planned
	SoftDeadline        *time.Time `json:"soft_deadline"`
	HardDeadline        *time.Time `json:"hard_deadline"`
	PriorityMode        string     `json:"priority_mode"` // defaults to none
	PriorityLevel       int        `json:"priority_level"`
	PriorityPeriodStart *time.Time `json:"priority_period_start"`
	PriorityPeriodEnd   *time.Time `json:"priority_period_end"`
	Tags                string     `json:"tags"`
}

// UpdateTaskRequest holds a partial task update. Nil fields are left untouched.
type UpdateTaskRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Type                *string    `json:"type"`
	ProjectID           *string    `json:"project_id"`
	Status              *string    `json:"status"`
	SoftDeadline        *time.Time `json:"soft_deadline"`
	HardDeadline        *time.Time `json:"hard_deadline"`
	PriorityMode        *string    `json:"priority_mode"`
	PriorityLevel       *int       `json:"priority_level"`
	PriorityPeriodStart *time.Time `json:"priority_period_start"`
	PriorityPeriodEnd   *time.Time `json:"priority_period_end"`
	Tags                *string    `json:"tags"`
}

// AddProgressRequest holds the fields accepted when logging progress
type AddProgressRequest struct {
	ProgressValue int    `json:"progress_value"`
	EffortScore   int    `json:"effort_score"`
	Comment       string `json:"comment"`
}

// WorkStateRequest holds a daily self-assessment upsert
type WorkStateRequest struct {
	Date       string `json:"date"`
	SelfRating int    `json:"self_rating"`
	Notes      string `json:"notes"`
}

// TaskFilter selects tasks in list queries. Nil fields impose no constraint.
type TaskFilter struct {
	Status        string
	Type          string
	PriorityLevel *int
	StartDate     *time.Time
	EndDate       *time.Time
}

// DayCount is one point of a per-day count series
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DayEffort is one point of a per-day average effort series
type DayEffort struct {
	Date          string  `json:"date"`
	AverageEffort float64 `json:"average_effort"`
}

// AnalyticsSummary is a derived aggregate over a date range; never persisted
type AnalyticsSummary struct {
	CreatedTasks        int         `json:"created_tasks"`
	CompletedTasks      int         `json:"completed_tasks"`
	FailedTasks         int         `json:"failed_tasks"`
	CompletedPerDay     []DayCount  `json:"completed_per_day"`
	AverageEffortPerDay []DayEffort `json:"average_effort_per_day"`
}

// TaskAnalytics is the chronological progress history of a single task
type TaskAnalytics struct {
	TaskID   string          `json:"task_id"`
	Progress []ProgressEntry `json:"progress"`
}

// DeadlineReport classifies tasks against the current calendar day
type DeadlineReport struct {
	DueToday []Task `json:"due_today"`
	Overdue  []Task `json:"overdue"`
}
