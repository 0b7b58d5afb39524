package core

import (
	"github.com/virhant/planner/internal/storage"
)

// TaskStorage persists tasks.
// Implementations: storage.Store (SQLite)
type TaskStorage interface {
	SaveTask(task *storage.TaskRecord) error
	GetTask(id string) (*storage.TaskRecord, error)
	ListTasks(filter storage.TaskFilter) ([]*storage.TaskRecord, error)

	// UpdateTaskGuarded writes the row only while the stored status still
	// equals expectedStatus, keeping check-then-write atomic per task.
	UpdateTaskGuarded(task *storage.TaskRecord, expectedStatus string) error

	// DeleteTask removes the task and cascades to its progress entries.
	DeleteTask(id string) error
}

// ProgressStorage persists the append-only progress log.
// Implementations: storage.Store (SQLite)
type ProgressStorage interface {
	SaveProgress(entry *storage.ProgressRecord) error
	ListProgress(taskID string) ([]*storage.ProgressRecord, error)
	ListProgressAll() ([]*storage.ProgressRecord, error)
}

// WorkStateStorage persists per-day self assessments.
// Implementations: storage.Store (SQLite)
type WorkStateStorage interface {
	UpsertWorkState(state *storage.WorkStateRecord) error
	ListWorkStates(from, to string) ([]*storage.WorkStateRecord, error)
}

// IDGenerator generates unique identifiers.
// Implementations: storage.GenerateID (UUID-based)
type IDGenerator interface {
	GenerateID() string
}

// defaultIDGenerator uses UUID for ID generation
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) GenerateID() string {
	return storage.GenerateID()
}

// NewIDGenerator creates a default ID generator.
func NewIDGenerator() IDGenerator {
	return &defaultIDGenerator{}
}
